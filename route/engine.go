// Package route implements the integrated routing engine specified in
// SPEC_FULL.md §4: subsurface lateral routing, surface kinematic-wave
// routing with Green-Ampt infiltration, and the vertical balancer that
// couples them, orchestrated by the driver in strict per-substep order.
package route

import (
	"github.com/maseology/patchroute/canopy"
	"github.com/maseology/patchroute/patch"
	"github.com/maseology/patchroute/topo"
	"github.com/sirupsen/logrus"
)

// Config holds the tuning the driver recognizes, per SPEC_FULL.md §6:
// verbose_flag controls diagnostic emission only (no effect on
// numerics); std_scale scales each patch's microtopographic stdev in
// the subsurface transmissivity quadrature.
type Config struct {
	Verbose  bool
	StdScale float64
}

// Engine is the routing context object called for in SPEC_FULL.md §9:
// it owns the lazily-constructed topology and replaces the original's
// module-level globals and num_patches==-9999 sentinel with ordinary
// construct-on-first-use.
type Engine struct {
	Config Config
	Canopy CanopyProducer
	Stream StreamRouter
	Zinv   PorosityInverter

	topology *topo.Topology
	log      *logrus.Logger
}

// NewEngine builds an Engine with the given collaborators. Canopy and
// Stream may be nil, in which case canopy.Zero{} and stream.NoOp{}-like
// zero behavior is used (a nil-safe no-op, so callers in the core test
// suite need not import the stream package to exercise the driver).
func NewEngine(cfg Config, can CanopyProducer, str StreamRouter) *Engine {
	e := &Engine{
		Config: cfg,
		Canopy: can,
		Stream: str,
		Zinv:   NewExponentialPorosityInverter(),
		log:    logrus.New(),
	}
	if cfg.Verbose {
		e.log.SetLevel(logrus.DebugLevel)
	} else {
		e.log.SetLevel(logrus.WarnLevel)
	}
	return e
}

// Run implements SPEC_FULL.md §4.7 / spec.md §4.7, the hydro_routing
// entry point: on first invocation it initializes topology, then
// advances the basin's state by extstep seconds.
func (e *Engine) Run(b *patch.Basin, extstep float64) {
	if e.topology == nil {
		e.topology = topo.Build(b, topo.Config{Verbose: e.Config.Verbose, StdScale: e.Config.StdScale})
		e.log.WithField("patches", e.topology.N).Debug("topology constructed")
	}
	t := e.topology

	s := Snapshot(t)

	for tRemaining := extstep; tRemaining > Epsilon; {
		substep, lat := subRouting(t, s, tRemaining)

		canRates := NewRatesOrZero(e.Canopy, t, substep)
		inf := sfcRouting(t, s, substep, canRates)

		var overflow SurfaceOverflow
		if e.Stream != nil {
			overflow = e.Stream.Route(t, substep, lat)
			applyOverflow(t.N, s, overflow)
		}

		subVertical(t, s, inf, lat, e.Zinv)

		e.log.WithFields(logrus.Fields{"remaining": tRemaining, "substep": substep}).Debug("sub-step complete")
		tRemaining -= substep
	}

	WriteBack(t, s)
}

// NewRatesOrZero calls can.Rates if can is non-nil, else returns a
// zeroed Rates matching canopy.Zero's contract.
func NewRatesOrZero(can CanopyProducer, t *topo.Topology, substep float64) canopy.Rates {
	if can != nil {
		return can.Rates(t, substep)
	}
	return canopy.NewRates(t)
}
