package route

import "github.com/maseology/patchroute/topo"

// PorosityInverter is the compute_z_final collaborator: it inverts the
// exponential porosity-decay profile to convert a water deficit (volume
// per unit area, negative meaning below field capacity) into a
// water-table depth below the surface.
type PorosityInverter interface {
	InvertDepth(por0, porDecay, dzsoil, zInitial, deltaWater float64) float64
}

// subVertical implements SPEC_FULL.md §4.6 / spec.md §4.6: it merges
// infiltration and lateral inflow into the column, splits any excess
// above field capacity back to the surface store, and recomputes the
// water-table elevation.
//
// Grounded on original_source/rhessys/hydro/hydro_routing.c sub_vertical().
func subVertical(t *topo.Topology, s *State, inf *Infiltration, lat *LateralInflow, zInv PorosityInverter) {
	forEachPatch(t.N, func(i int) {
		p := t.Basin.Patches[i]

		s.TotH2O[i] += inf.H2O[i] + lat.H2O[i]
		s.TotNO3[i] += inf.NO3[i] + lat.NO3[i]
		s.TotNH4[i] += inf.NH4[i] + lat.NH4[i]
		s.TotDON[i] += inf.DON[i] + lat.DON[i]
		s.TotDOC[i] += inf.DOC[i] + lat.DOC[i]

		if s.TotH2O[i] > s.CapH2O[i] {
			fac := (s.TotH2O[i] - s.CapH2O[i]) / s.TotH2O[i]
			s.SfcH2O[i] += fac * s.TotH2O[i]
			s.SfcNO3[i] += fac * s.TotNO3[i]
			s.SfcNH4[i] += fac * s.TotNH4[i]
			s.SfcDON[i] += fac * s.TotDON[i]
			s.SfcDOC[i] += fac * s.TotDOC[i]

			s.TotH2O[i] -= fac * s.TotH2O[i]
			s.TotNO3[i] -= fac * s.TotNO3[i]
			s.TotNH4[i] -= fac * s.TotNH4[i]
			s.TotDON[i] -= fac * s.TotDON[i]
			s.TotDOC[i] -= fac * s.TotDOC[i]

			s.WaterZ[i] = p.Z
		} else {
			dH2O := s.TotH2O[i] - s.CapH2O[i]
			depth := zInv.InvertDepth(p.Soil.Porosity0, p.Soil.PorosityDecay, p.Soil.IntervalSize, 0.0, dH2O)
			s.WaterZ[i] = p.Z - depth
		}
	})
}
