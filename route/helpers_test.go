package route

import (
	"github.com/maseology/patchroute/patch"
	"github.com/maseology/patchroute/topo"
)

// newTestPatch returns a patch with a self-consistent minimal soil
// profile: a flat transmissivity profile (so quadrature reduces to a
// constant regardless of sat-deficit) and enough column water above
// field capacity to exercise subRouting without tripping its
// non-positive-water guard.
func newTestPatch(x, y float64) *patch.Patch {
	nsoil := 10
	profile := make([]float64, nsoil+1)
	for i := range profile {
		profile[i] = 1.0
	}
	return &patch.Patch{
		X: x, Y: y, Area: 100, SlopeMax: 0.05, MannN: 0.05, Z: 10,
		NumSoilIntervals: nsoil,
		Soil: patch.SoilDefaults{
			IntervalSize: 0.1, DetentionStoreCap: 0.01,
			Ksat0V: 0.1, MzV: 0.5, Porosity0: 0.4, PorosityDecay: 0.5,
			PsiAirEntry: 0.3, SoilDepth: 1.0,
		},
		TransmissivityProfile: profile,
		KsatVertical:          0.01,
		FieldCapacity:         1.0,
		SatDeficit:            0.5,
	}
}

func newTestTopology(patches ...*patch.Patch) *topo.Topology {
	return topo.Build(&patch.Basin{Patches: patches}, topo.Config{})
}
