// Package stream is the external collaborator specified in
// SPEC_FULL.md §4.5: given the current sub-step, it scavenges lateral
// inflow targeted at stream-labelled patches, applies baseflow
// accounting, and returns any overflow to the corresponding surface
// pools. The core defines the contract only; a basin with no stream
// edges may use NoOp.
package stream

import (
	"github.com/maseology/patchroute/route"
	"github.com/maseology/patchroute/topo"
)

// NoOp satisfies route.StreamRouter by doing nothing: it neither
// scavenges lateral inflow nor returns overflow, matching spec.md §4.5's
// "free to no-op this component if the basin has no stream edges."
type NoOp struct{}

// Route implements route.StreamRouter.
func (NoOp) Route(t *topo.Topology, substep float64, lat *route.LateralInflow) route.SurfaceOverflow {
	return route.SurfaceOverflow{}
}
