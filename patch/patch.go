// Package patch holds the data model for the coupled hydrological
// routing engine: the patch (cell) state, its drainage lists, and the
// basin that collects them.
package patch

import "math"

// SoilDefaults groups the time-independent soil parameters a patch draws
// its vertical-process constants from. In the original RHESSYS source
// these live behind a `soil_defaults[0][0]` multi-stratum lookup table;
// the core only ever reads the default in use, so it is flattened here.
type SoilDefaults struct {
	IntervalSize      float64 // dzsoil
	DetentionStoreCap float64 // retdep
	Ksat0V            float64 // Ksat_0_v, surface vertical Ksat
	MzV               float64 // mz_v, K decay coefficient
	Porosity0         float64 // por_0, surface porosity
	PorosityDecay     float64 // por_d
	PsiAirEntry       float64 // psi_air
	SoilDepth         float64
	NDecayRate        float64
	DOMDecayRate      float64
}

// Rootzone carries the root-zone depth and saturation fraction used to
// pick between rootzone.S and the column S per §4/§6.
type Rootzone struct {
	Depth float64
	S     float64
}

// SoilNitrogen holds the column nitrogen species totals.
type SoilNitrogen struct {
	Nitrate float64
	Sminn   float64 // ammonium pool
	DON     float64
}

// SoilCarbon holds the column carbon species totals.
type SoilCarbon struct {
	DOC float64
}

// NeighborSurface is one entry of a patch's surface_innundation_list:
// a downhill neighbor plus its (un-normalized) exchange weight gamma.
type NeighborSurface struct {
	To    *Patch
	Gamma float64
}

// NeighborSub is one entry of a patch's innundation_list: a downhill
// subsurface neighbor. Geometric factors (perimf, subdist) are derived
// once by the topology builder, not stored here.
type NeighborSub struct {
	To *Patch
}

// Patch is the smallest spatial unit of the simulation.
type Patch struct {
	// Index is assigned once by the topology builder and never mutated
	// afterward; it replaces the original's O(N) pointer-identity scan
	// (patchdex) on every hot-path lookup.
	Index int

	// Geometry
	X, Y      float64
	Area      float64
	SlopeMax  float64
	MannN     float64
	Perimeter float64
	Z         float64
	Std       float64 // microtopographic standard deviation

	// Soil profile
	NumSoilIntervals      int
	Soil                  SoilDefaults
	KsatVertical          float64 // Ksat_vertical, depth-integrated
	TransmissivityProfile []float64
	FieldCapacity         float64
	Rootzone              Rootzone
	S                     float64

	// Hydrologic state
	DetentionStore                                 float64 // sfcH2O
	SurfaceNO3, SurfaceNH4, SurfaceDOC, SurfaceDON float64
	SatDeficit                                     float64
	SatDeficitZ                                    float64
	SoilNS                                         SoilNitrogen
	SoilCS                                         SoilCarbon

	// Drainage lists, ordered
	SurfaceNeighbors []NeighborSurface
	SubNeighbors     []NeighborSub
}

// Psize returns sqrt(area), the characteristic cell size used throughout
// the routing equations.
func (p *Patch) Psize() float64 {
	return math.Sqrt(p.Area)
}

// Basin is a collection of patches. Order is not required to be
// topological: the inflow-matrix formulation is order-independent.
type Basin struct {
	Patches []*Patch
}

// NumPatches returns the patch count.
func (b *Basin) NumPatches() int { return len(b.Patches) }
