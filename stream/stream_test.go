package stream

import (
	"testing"

	"github.com/maseology/patchroute/patch"
	"github.com/maseology/patchroute/route"
	"github.com/maseology/patchroute/topo"
)

func TestNoOpReturnsZeroValue(t *testing.T) {
	b := &patch.Basin{Patches: []*patch.Patch{{Area: 100, MannN: 0.05, SlopeMax: 0.05}}}
	top := topo.Build(b, topo.Config{})

	ov := NoOp{}.Route(top, 60.0, &route.LateralInflow{})
	if ov.H2O != nil {
		t.Fatalf("expected NoOp to return a zero-value SurfaceOverflow, got %+v", ov)
	}
}
