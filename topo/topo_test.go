package topo

import (
	"testing"

	"github.com/maseology/patchroute/patch"
)

func twoPatchBasin() *patch.Basin {
	a := &patch.Patch{X: 0, Y: 0, Area: 100, Z: 10}
	b := &patch.Patch{X: 10, Y: 0, Area: 100, Z: 0}
	a.SubNeighbors = []patch.NeighborSub{{To: b}}
	a.SurfaceNeighbors = []patch.NeighborSurface{{To: b, Gamma: 1.0}}
	return &patch.Basin{Patches: []*patch.Patch{a, b}}
}

func TestBuildAssignsIndex(t *testing.T) {
	bas := twoPatchBasin()
	Build(bas, Config{})
	if bas.Patches[0].Index != 0 || bas.Patches[1].Index != 1 {
		t.Fatalf("expected indices 0,1; got %d,%d", bas.Patches[0].Index, bas.Patches[1].Index)
	}
}

// TestInflowInversion validates invariant 7: every outflow edge (i->k)
// with weight w has exactly one matching inflow entry at k referencing
// i with the same weight scaled by the area ratio.
func TestInflowInversion(t *testing.T) {
	bas := twoPatchBasin()
	top := Build(bas, Config{})

	if got := top.SurfInflowCount(1); got != 1 {
		t.Fatalf("expected 1 inflow entry at patch 1, got %d", got)
	}
	if got := top.SurfInflowCount(0); got != 0 {
		t.Fatalf("expected 0 inflow entries at patch 0, got %d", got)
	}
	in := top.SurfIn[1][0]
	if in.From != 0 {
		t.Fatalf("expected inflow source index 0, got %d", in.From)
	}
	// gamma-hat(0,0) = 1.0 (single neighbor), area ratio 100/100 = 1
	if diff := in.Gam - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected inflow weight 1.0, got %v", in.Gam)
	}

	if got := top.SubInflowCount(1); got != 1 {
		t.Fatalf("expected 1 subsurface inflow entry at patch 1, got %d", got)
	}
	if got := top.SubInflowCount(0); got != 0 {
		t.Fatalf("expected 0 subsurface inflow entries at patch 0, got %d", got)
	}
}

// TestSubEdgeAxisVsDiagonal validates §4.1's classification rule using
// the current patch's own position (REDESIGN FLAG: never a stray
// neighbor's position).
func TestSubEdgeAxisVsDiagonal(t *testing.T) {
	center := &patch.Patch{X: 10, Y: 10, Area: 100}
	axial := &patch.Patch{X: 20, Y: 10, Area: 100} // due east: axis-aligned
	diag := &patch.Patch{X: 20, Y: 20, Area: 100}  // diagonal
	center.SubNeighbors = []patch.NeighborSub{{To: axial}, {To: diag}}
	bas := &patch.Basin{Patches: []*patch.Patch{center, axial, diag}}
	top := Build(bas, Config{})

	axialEdge := top.SubOut[0][0]
	diagEdge := top.SubOut[0][1]
	if diff := axialEdge.Perimf - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected axis-aligned perimf 0.5, got %v", axialEdge.Perimf)
	}
	expectDiag := 0.5 * 0.7071067811865476
	if diff := diagEdge.Perimf - expectDiag; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected diagonal perimf %.9f, got %v", expectDiag, diagEdge.Perimf)
	}
}

// TestFanInOverflowFatal validates scenario S6: configuring more than
// MaxNeighbors sources draining into one sink must fail fatally.
func TestFanInOverflowFatal(t *testing.T) {
	orig := fatalf
	defer func() { fatalf = orig }()

	called := false
	fatalf = func(format string, args ...interface{}) {
		called = true
		panic("fatal")
	}

	sink := &patch.Patch{X: 0, Y: 0, Area: 100}
	patches := []*patch.Patch{sink}
	for i := 0; i < MaxNeighbors+1; i++ {
		src := &patch.Patch{X: float64(i + 1), Y: 0, Area: 100}
		src.SurfaceNeighbors = []patch.NeighborSurface{{To: sink, Gamma: 1.0}}
		patches = append(patches, src)
	}
	bas := &patch.Basin{Patches: patches}

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected Build to invoke fatalf on fan-in overflow")
		}
		if !called {
			t.Fatalf("expected fatalf to have been called")
		}
	}()
	Build(bas, Config{})
}

func TestSurfaceGammaNormalizes(t *testing.T) {
	sink1 := &patch.Patch{X: 10, Y: 0, Area: 100}
	sink2 := &patch.Patch{X: 0, Y: 10, Area: 100}
	src := &patch.Patch{X: 0, Y: 0, Area: 100}
	src.SurfaceNeighbors = []patch.NeighborSurface{{To: sink1, Gamma: 3.0}, {To: sink2, Gamma: 1.0}}
	bas := &patch.Basin{Patches: []*patch.Patch{src, sink1, sink2}}
	top := Build(bas, Config{})

	sum := 0.0
	for _, g := range top.SurfGammaOut[0] {
		sum += g
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected normalized gamma to sum to 1, got %v", sum)
	}
}
