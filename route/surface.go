package route

import (
	"math"

	"github.com/maseology/patchroute/canopy"
	"github.com/maseology/patchroute/topo"
)

// Infiltration holds the per-patch infiltration accumulated over an
// sfcRouting call, ready for the vertical balancer to merge into the
// column.
type Infiltration struct {
	H2O, NO3, NH4, DOC, DON []float64
}

func newInfiltration(n int) *Infiltration {
	return &Infiltration{
		H2O: make([]float64, n), NO3: make([]float64, n),
		NH4: make([]float64, n), DOC: make([]float64, n), DON: make([]float64, n),
	}
}

// sfcRouting implements SPEC_FULL.md §4.4 / spec.md §4.4: kinematic-wave
// overland flow on the inflow-matrix graph with its own inner adaptive
// timestep, plus Green-Ampt-style infiltration into each patch.
//
// Grounded on original_source/rhessys/hydro/hydro_routing.c sfc_routing().
func sfcRouting(t *topo.Topology, s *State, tstep float64, can canopy.Rates) *Infiltration {
	n := t.N
	inf := newInfiltration(n)

	tfinal := tstep - Epsilon
	outH2O := make([]float64, n)
	outNO3 := make([]float64, n)
	outNH4 := make([]float64, n)
	outDOC := make([]float64, n)
	outDON := make([]float64, n)

	for tCur := 0.0; tCur < tfinal; {
		seed := Coumax / tstep
		cmax := maxOverPatches(n, seed, func(i int) float64 {
			hh := s.SfcH2O[i] - t.Basin.Patches[i].Soil.DetentionStoreCap
			if hh <= 0 {
				outH2O[i], outNO3[i], outNH4[i], outDOC[i], outDON[i] = 0, 0, 0, 0, 0
				return 0
			}
			vel := t.Sfcknl[i] * math.Pow(hh, TwoThirds)
			div := hh / s.SfcH2O[i]
			outH2O[i] = vel * hh
			outNO3[i] = vel * div * s.SfcNO3[i]
			outNH4[i] = vel * div * s.SfcNH4[i]
			outDOC[i] = vel * div * s.SfcDOC[i]
			outDON[i] = vel * div * s.SfcDON[i]
			return vel
		})

		dt := math.Min(Coumax/cmax, tstep-tCur)

		forEachPatch(n, func(i int) {
			sumH2O := -outH2O[i]
			sumNO3 := -outNO3[i]
			sumNH4 := -outNH4[i]
			sumDOC := -outDOC[i]
			sumDON := -outDON[i]
			for _, in := range t.SurfIn[i] {
				k := in.From
				sumH2O += in.Gam * outH2O[k]
				sumNO3 += in.Gam * outNO3[k]
				sumNH4 += in.Gam * outNH4[k]
				sumDOC += in.Gam * outDOC[k]
				sumDON += in.Gam * outDON[k]
			}
			sumH2O += can.H2O[i]
			sumNO3 += can.NO3[i]
			sumNH4 += can.NH4[i]
			sumDOC += can.DOC[i]
			sumDON += can.DON[i]

			s.SfcH2O[i] += sumH2O * dt
			s.SfcNO3[i] += sumNO3 * dt
			s.SfcNH4[i] += sumNH4 * dt
			s.SfcDOC[i] += sumDOC * dt
			s.SfcDON[i] += sumDON * dt

			infiltrate(t, s, inf, i, dt)
		})

		tCur += dt
	}

	return inf
}

// infiltrate applies the Green-Ampt sorptivity-based infiltration model
// to patch i for the internal sub-step dt, per spec.md §4.4.
func infiltrate(t *topo.Topology, s *State, inf *Infiltration, i int, dt float64) {
	p := t.Basin.Patches[i]
	rootzs := p.S
	if p.Rootzone.Depth > zero {
		rootzs = p.Rootzone.S
	}
	if !(rootzs < 1.0 && p.Soil.Ksat0V > zero) {
		return
	}

	z := p.SatDeficitZ
	mzV := p.Soil.MzV
	porD := p.Soil.PorosityDecay
	ksat0 := p.Soil.Ksat0V
	por0 := p.Soil.Porosity0

	var ksat, poro float64
	if mzV > 0 {
		ksat = mzV * ksat0 * (1 - math.Exp(-z/mzV)) / z
	} else {
		ksat = ksat0
	}
	if porD < 999.9 {
		poro = porD * por0 * (1 - math.Exp(-z/porD)) / z
	} else {
		poro = por0
	}

	theta := rootzs * poro
	psiF := 0.76 * p.Soil.PsiAirEntry
	sp := math.Sqrt(2.0 * ksat * psiF)

	if s.SfcH2O[i] <= 0 {
		return
	}
	intensity := s.SfcH2O[i] / dt

	var tp float64
	if intensity > ksat {
		tp = ksat * psiF * (poro - theta) / (intensity * (intensity - ksat))
	} else {
		tp = dt
	}

	var delta float64
	if dt <= tp {
		delta = p.KsatVertical * s.SfcH2O[i]
	} else {
		cand := sp*math.Sqrt(dt-tp) + math.Pow(ksat, 1.5)/3.0 + tp*s.SfcH2O[i]
		if cand > s.SfcH2O[i] {
			cand = s.SfcH2O[i]
		}
		delta = p.KsatVertical * cand
	}

	afac := delta / s.SfcH2O[i]
	inf.H2O[i] += delta
	s.SfcH2O[i] -= delta
	inf.NO3[i] += afac * s.SfcNO3[i]
	s.SfcNO3[i] -= afac * s.SfcNO3[i]
	inf.NH4[i] += afac * s.SfcNH4[i]
	s.SfcNH4[i] -= afac * s.SfcNH4[i]
	inf.DOC[i] += afac * s.SfcDOC[i]
	s.SfcDOC[i] -= afac * s.SfcDOC[i]
	inf.DON[i] += afac * s.SfcDON[i]
	s.SfcDON[i] -= afac * s.SfcDON[i]
}
