// Package canopy is the external collaborator specified in
// SPEC_FULL.md §4.3: it supplies per-patch surface source rates (water
// plus the four dissolved species) for the current sub-step. The core
// routing engine only requires that the five arrays hold rates per unit
// time; how they are populated -- throughfall, drip, dissolved loads --
// is this package's concern, not the router's.
package canopy

import "github.com/maseology/patchroute/topo"

// Rates holds the five per-patch surface source-rate arrays for one
// sub-step.
type Rates struct {
	H2O, NO3, NH4, DOC, DON []float64
}

// NewRates allocates a zeroed Rates sized for the topology.
func NewRates(t *topo.Topology) Rates {
	n := t.N
	return Rates{
		H2O: make([]float64, n), NO3: make([]float64, n),
		NH4: make([]float64, n), DOC: make([]float64, n), DON: make([]float64, n),
	}
}

// Producer supplies canopy source rates for one sub-step. The router
// calls Rates once per internal sub-step and treats the result as
// read-only for the duration of that sub-step's surface-routing pass.
type Producer interface {
	Rates(t *topo.Topology, substep float64) Rates
}

// Zero is the minimal reference producer: it zeros all five arrays and
// superimposes nothing. This matches original_source's own can_routing,
// whose "Add precip, fall-through" comment documents that throughfall
// computation lives outside the shown code -- the full per-stratum
// ecohydrology producer is an out-of-scope collaborator per spec.md §1.
type Zero struct{}

// Rates implements Producer.
func (Zero) Rates(t *topo.Topology, substep float64) Rates {
	return NewRates(t)
}
