package route

import "math"

// Constants fixed by the routing scheme; see SPEC_FULL.md §6.
const (
	CplMax    = 1800.0        // upper bound on the subsurface-driven sub-step (s)
	Coumax    = 0.2           // maximum Courant number
	Epsilon   = 1.0e-5        // outer-loop round-off tolerance (s)
	TwoThirds = 2.0 / 3.0
)

// Deg2Rad converts degrees to radians.
var Deg2Rad = math.Pi / 180.0

const zero = 1e-12

// quadNode and quadWeight are the fixed 9-point Gauss-Hermite-like quadrature used to
// integrate the transmissivity profile over the sat-deficit distribution.
var (
	quadNode   = [9]float64{0.0, 0.253, 0.524, 0.842, 1.283, -0.253, -0.524, -0.842, -1.283}
	quadWeight = [9]float64{0.2, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
)
