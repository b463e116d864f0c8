package route

import "testing"

// constZInv is a stub PorosityInverter returning a fixed depth,
// isolating subVertical's merge-and-split logic from the inversion
// model's own numerics.
type constZInv struct{ depth float64 }

func (c constZInv) InvertDepth(por0, porDecay, dzsoil, zInitial, deltaWater float64) float64 {
	return c.depth
}

// TestSubVerticalBelowCapacity validates the column-only branch of
// §4.6: when the merged total stays at or below field capacity, the
// excess goes nowhere and the water table is recomputed via the
// inverter.
func TestSubVerticalBelowCapacity(t *testing.T) {
	p := newTestPatch(0, 0)
	top := newTestTopology(p)
	s := Snapshot(top)
	s.TotH2O[0] = 0.5
	s.CapH2O[0] = 1.0

	inf := newInfiltration(top.N)
	lat := newLateralInflow(top.N)
	inf.H2O[0] = 0.1

	subVertical(top, s, inf, lat, constZInv{depth: 0.25})

	if s.TotH2O[0] != 0.6 {
		t.Fatalf("expected total column water 0.6, got %v", s.TotH2O[0])
	}
	if s.SfcH2O[0] != 0 {
		t.Fatalf("expected no surface overflow below field capacity, got %v", s.SfcH2O[0])
	}
	if want := p.Z - 0.25; s.WaterZ[0] != want {
		t.Fatalf("expected water table at %v, got %v", want, s.WaterZ[0])
	}
}

// TestSubVerticalAboveCapacitySpillsToSurface validates the overflow
// branch of §4.6: when the merged total exceeds field capacity, the
// excess fraction (and its species) move to the surface pool, the
// column settles at capacity, and the water table rises to the
// surface.
func TestSubVerticalAboveCapacitySpillsToSurface(t *testing.T) {
	p := newTestPatch(0, 0)
	top := newTestTopology(p)
	s := Snapshot(top)
	s.TotH2O[0] = 1.0
	s.CapH2O[0] = 1.0
	s.TotNO3[0] = 1.0

	inf := newInfiltration(top.N)
	lat := newLateralInflow(top.N)
	inf.H2O[0] = 1.0 // pushes total to 2.0, double the 1.0 capacity

	subVertical(top, s, inf, lat, constZInv{depth: 0.0})

	if diff := s.TotH2O[0] - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected column to settle at field capacity 1.0, got %v", s.TotH2O[0])
	}
	if diff := s.SfcH2O[0] - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected the excess 1.0 to spill to the surface, got %v", s.SfcH2O[0])
	}
	if s.WaterZ[0] != p.Z {
		t.Fatalf("expected a saturated water table at the surface (%v), got %v", p.Z, s.WaterZ[0])
	}
	// NO3 follows the same fraction: half of the doubled total (1.0) spills.
	if diff := s.SfcNO3[0] - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected half of the nitrate total to spill, got %v", s.SfcNO3[0])
	}
}
