package route

import "github.com/maseology/patchroute/topo"

// SurfaceOverflow holds per-patch water and species that a stream
// router returns to the surface pool after scavenging lateral inflow
// and applying baseflow accounting, per SPEC_FULL.md §4.5.
type SurfaceOverflow struct {
	H2O, NO3, NH4, DOC, DON []float64
}

// StreamRouter is the stream-network collaborator's contract. The
// engine calls Route once per sub-step, after sfc_routing and before
// sub_vertical, passing the lateral inflow computed this sub-step.
type StreamRouter interface {
	Route(t *topo.Topology, substep float64, lat *LateralInflow) SurfaceOverflow
}

func applyOverflow(n int, s *State, ov SurfaceOverflow) {
	if ov.H2O == nil {
		return
	}
	forEachPatch(n, func(i int) {
		s.SfcH2O[i] += ov.H2O[i]
		s.SfcNO3[i] += ov.NO3[i]
		s.SfcNH4[i] += ov.NH4[i]
		s.SfcDOC[i] += ov.DOC[i]
		s.SfcDON[i] += ov.DON[i]
	})
}
