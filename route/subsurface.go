package route

import (
	"log"
	"math"

	"github.com/maseology/patchroute/topo"
)

// LateralInflow holds the per-patch lateral deltas produced by
// subRouting: water and the four species, ready to be merged into the
// column by the vertical balancer.
type LateralInflow struct {
	H2O, NO3, NH4, DOC, DON []float64
}

func newLateralInflow(n int) *LateralInflow {
	return &LateralInflow{
		H2O: make([]float64, n), NO3: make([]float64, n),
		NH4: make([]float64, n), DOC: make([]float64, n), DON: make([]float64, n),
	}
}

// subRouting implements SPEC_FULL.md §4.2 / spec.md §4.2: horizontal
// groundwater routing across the subsurface drainage graph, deriving
// the Courant-stable coupling sub-step and the per-patch lateral deltas.
//
// Grounded on original_source/rhessys/hydro/hydro_routing.c sub_routing().
func subRouting(t *topo.Topology, s *State, tstep float64) (substep float64, lat *LateralInflow) {
	n := t.N
	trans := make([]float64, n)

	// 1. transmissivity at the water table
	forEachPatch(n, func(i int) {
		p := t.Basin.Patches[i]
		nsoil := p.NumSoilIntervals
		dz := p.Soil.IntervalSize
		if t.Pscale[i] > 0 {
			tsum := 0.0
			for m := 0; m < 9; m++ {
				idx := clampIndex(int(math.Round((p.SatDeficit+quadNode[m]*t.Pscale[i])/dz)), nsoil)
				tsum += p.TransmissivityProfile[idx] * quadWeight[m]
			}
			trans[i] = tsum
		} else {
			idx := clampIndex(int(math.Round(p.SatDeficit/dz)), nsoil)
			trans[i] = p.TransmissivityProfile[idx]
		}
	})

	// 2. per-edge slope & outflow, and cmax reduction
	outH2O := make([]float64, n)
	gamma := make([][]float64, n)   // normalized per-source outflow fraction, for species partitioning
	dH2Odt := make([][]float64, n)  // per-edge outflow rate

	seed := Coumax / math.Min(tstep, CplMax)
	cmax := maxOverPatches(n, seed, func(i int) float64 {
		edges := t.SubOut[i]
		g := make([]float64, len(edges))
		d := make([]float64, len(edges))
		gsum, wsum, localMax := 0.0, 0.0, 0.0
		z1 := s.WaterZ[i]
		for j, e := range edges {
			z2 := s.WaterZ[e.To]
			slope := (z1 - z2) / e.Subdist
			if slope > zero {
				zz := 0.5 * (z1 + z2)
				vel := slope * trans[i] / t.Psize[i]
				g[j] = slope
				d[j] = e.Perimf * zz * vel
				gsum += slope
				wsum += d[j]
				if vel > localMax {
					localMax = vel
				}
			}
		}
		if gsum > zero {
			inv := 1.0 / gsum
			for j := range g {
				g[j] *= inv
			}
		}
		gamma[i] = g
		dH2Odt[i] = d
		outH2O[i] = wsum
		return localMax
	})

	// 3. Courant-stable sub-step
	dt := math.Min(Coumax/cmax, tstep)
	substep = dt

	// 4. per-patch leaving fractions
	outfac := make([]float64, n)
	rtefac := make([][]float64, n)
	forEachPatch(n, func(i int) {
		if s.TotH2O[i] <= 0 {
			log.Fatalf("route.subRouting: patch %d has non-positive column water (totH2O=%.6g); out-of-range input", i, s.TotH2O[i])
		}
		fac := dt / s.TotH2O[i]
		outfac[i] = fac * outH2O[i]
		edges := t.SubOut[i]
		rf := make([]float64, len(edges))
		for j := range edges {
			rf[j] = fac * gamma[i][j] * dH2Odt[i][j]
		}
		rtefac[i] = rf
	})

	// 5. deltas via inflow tables -- destination-owned, race-free
	lat = newLateralInflow(n)
	forEachPatch(n, func(i int) {
		dH2O := -outH2O[i] * dt
		dNO3 := -outfac[i] * s.TotNO3[i]
		dNH4 := -outfac[i] * s.TotNH4[i]
		dDOC := -outfac[i] * s.TotDOC[i]
		dDON := -outfac[i] * s.TotDON[i]
		for _, in := range t.SubIn[i] {
			k := in.From
			j := in.OutSlot
			dH2O += dH2Odt[k][j] * dt
			dNO3 += rtefac[k][j] * s.TotNO3[k]
			dNH4 += rtefac[k][j] * s.TotNH4[k]
			dDOC += rtefac[k][j] * s.TotDOC[k]
			dDON += rtefac[k][j] * s.TotDON[k]
		}
		lat.H2O[i] = dH2O
		lat.NO3[i] = dNO3
		lat.NH4[i] = dNH4
		lat.DOC[i] = dDOC
		lat.DON[i] = dDON
	})

	return substep, lat
}

func clampIndex(idx, nsoil int) int {
	if idx < 0 {
		return 0
	}
	if idx > nsoil {
		return nsoil
	}
	return idx
}
