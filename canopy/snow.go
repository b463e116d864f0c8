package canopy

import "github.com/maseology/patchroute/topo"

// Stratum is the minimal per-patch canopy state needed to bound
// potential snow interception, supplementing the spec's bare Producer
// contract with the one concrete piece original_source/rhessys/hydro/
// compute_potential_snow_interception.c computes outside the core. This
// is not part of patch.Patch: canopy/vegetation state belongs to the
// per-stratum ecohydrology collaborator the spec scopes out, not to the
// routing engine's own data model.
type Stratum struct {
	Vegetated             bool
	GapFraction           float64 // fraction of sky not intercepted by canopy
	AllPAI                float64 // total plant area index (vegetated only)
	SpecificSnowCapacity  float64 // canopy snow-holding capacity per unit PAI (or total, non-vegetated)
	SnowStored            float64 // current canopy snow storage
}

// Snow is a reference canopy.Producer that bounds incoming snowfall by
// canopy interception capacity, split vegetated vs non-vegetated, per
// compute_potential_snow_interception.c. SnowInput supplies the per-patch
// snow-or-rain depth for the sub-step; Strata supplies per-patch canopy
// state. Both are sized to the topology.
type Snow struct {
	SnowInput []float64
	Strata    []Stratum
}

// Rates implements Producer: it superimposes bounded potential
// interception onto the water channel only -- species loads from
// throughfall are a separate ecohydrology concern left at zero here.
func (sn Snow) Rates(t *topo.Topology, substep float64) Rates {
	r := NewRates(t)
	if substep <= 0 {
		return r
	}
	for i := 0; i < t.N; i++ {
		snow := 0.0
		if i < len(sn.SnowInput) {
			snow = sn.SnowInput[i]
		}
		st := Stratum{}
		if i < len(sn.Strata) {
			st = sn.Strata[i]
		}

		interceptionCoef := 1.0 - st.GapFraction
		var potential float64
		if st.Vegetated {
			cap := st.AllPAI*st.SpecificSnowCapacity - st.SnowStored
			potential = min(interceptionCoef*snow, cap)
		} else {
			potential = min(snow, st.SpecificSnowCapacity-st.SnowStored)
		}
		if potential < 0 {
			potential = 0
		}
		r.H2O[i] = potential / substep
	}
	return r
}
