// Command patchroute is a thin illustrative driver for the routing
// engine. Full data ingest, patch/soil parameter loading, and general
// configuration are explicit out-of-scope collaborators per
// SPEC_FULL.md §1/§6 -- this command exists only to give the ambient
// stack (config, logging, entry point) a callable home.
package main

import (
	"flag"
	"fmt"

	"github.com/maseology/patchroute/canopy"
	"github.com/maseology/patchroute/patch"
	"github.com/maseology/patchroute/route"
	"github.com/maseology/patchroute/stream"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable diagnostic logging (no effect on numerics)")
	stdScale := flag.Float64("std-scale", 1.0, "microtopography stdev multiplier")
	extstep := flag.Float64("extstep", 3600.0, "external time step, seconds")
	flag.Parse()

	// A single self-contained patch is the smallest runnable basin: it
	// demonstrates wiring without requiring a real parameter-loading
	// collaborator, which is out of scope for this core.
	b := &patch.Basin{Patches: []*patch.Patch{
		{
			X: 0, Y: 0, Area: 100, SlopeMax: 0.05, MannN: 0.05, Z: 10,
			NumSoilIntervals: 10,
			Soil: patch.SoilDefaults{
				IntervalSize: 0.1, DetentionStoreCap: 0.01, Ksat0V: 0, MzV: 0.5,
				Porosity0: 0.4, PorosityDecay: 0.5, PsiAirEntry: 0.3, SoilDepth: 1.0,
			},
			TransmissivityProfile: make([]float64, 11),
			FieldCapacity:         1.0,
		},
	}}

	eng := route.NewEngine(route.Config{Verbose: *verbose, StdScale: *stdScale}, canopy.Zero{}, stream.NoOp{})
	eng.Run(b, *extstep)

	fmt.Printf("detention_store=%.6g sat_deficit=%.6g\n", b.Patches[0].DetentionStore, b.Patches[0].SatDeficit)
}
