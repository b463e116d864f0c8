package route

import (
	"github.com/maseology/patchroute/topo"
)

// State holds the dense flat (SoA) working arrays for one driver
// invocation: surface pools, column totals, and the water-table
// elevation. Its lifetime spans exactly one hydro_routing call; the
// per-substep scratch (outflow rates, lateral deltas, inflow
// accumulators) lives inside the component functions that use it.
type State struct {
	WaterZ []float64 // water-table elevation

	SfcH2O, SfcNO3, SfcNH4, SfcDOC, SfcDON []float64

	TotH2O, TotNO3, TotNH4, TotDOC, TotDON []float64

	CapH2O []float64
}

// Snapshot copies each patch's current state into flat working arrays,
// per SPEC_FULL.md §4.7 step 1.
func Snapshot(t *topo.Topology) *State {
	n := t.N
	s := &State{
		WaterZ: make([]float64, n),
		SfcH2O: make([]float64, n), SfcNO3: make([]float64, n), SfcNH4: make([]float64, n), SfcDOC: make([]float64, n), SfcDON: make([]float64, n),
		TotH2O: make([]float64, n), TotNO3: make([]float64, n), TotNH4: make([]float64, n), TotDOC: make([]float64, n), TotDON: make([]float64, n),
		CapH2O: make([]float64, n),
	}
	for i, p := range t.Basin.Patches {
		s.SfcH2O[i] = p.DetentionStore
		s.SfcNO3[i] = p.SurfaceNO3
		s.SfcNH4[i] = p.SurfaceNH4
		s.SfcDOC[i] = p.SurfaceDOC
		s.SfcDON[i] = p.SurfaceDON

		z := p.SatDeficitZ
		if z < 0 {
			z = 0
		}
		s.WaterZ[i] = p.Z - z

		s.CapH2O[i] = p.FieldCapacity
		s.TotH2O[i] = p.FieldCapacity - p.SatDeficit
		s.TotNO3[i] = p.SoilNS.Nitrate
		s.TotNH4[i] = p.SoilNS.Sminn
		s.TotDON[i] = p.SoilNS.DON
		s.TotDOC[i] = p.SoilCS.DOC
	}
	return s
}

// WriteBack copies the working arrays back onto the patches, per
// SPEC_FULL.md §4.7 step 3.
func WriteBack(t *topo.Topology, s *State) {
	for i, p := range t.Basin.Patches {
		p.DetentionStore = s.SfcH2O[i]
		p.SurfaceNO3 = s.SfcNO3[i]
		p.SurfaceNH4 = s.SfcNH4[i]
		p.SurfaceDOC = s.SfcDOC[i]
		p.SurfaceDON = s.SfcDON[i]

		p.SatDeficitZ = p.Z - s.WaterZ[i]
		p.SatDeficit = p.FieldCapacity - s.TotH2O[i]
		p.SoilNS.Nitrate = s.TotNO3[i]
		p.SoilNS.Sminn = s.TotNH4[i]
		p.SoilNS.DON = s.TotDON[i]
		p.SoilCS.DOC = s.TotDOC[i]
	}
}

