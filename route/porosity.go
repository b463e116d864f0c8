package route

import "math"

// ExponentialPorosityInverter inverts the exponential porosity-decay
// profile, whose depth-averaged porosity down to z is
// p(z) = porosityDecay<999.9 ? porosityDecay*por0*(1-e^(-z/porosityDecay))/z : por0,
// by bisection on the analytic cumulative water volume
// V(z) = z*p(z) = integral_0^z por0*e^(-u/porosityDecay) du, which is
// monotonic in z for z>=0. With decay, V(z) never exceeds
// por0*porosityDecay; a larger deficit is not reached by the search, which
// then returns its upper bound (1e6 or more below zInitial). No
// external solver library is warranted for a one-dimensional monotonic
// root on a closed-form integral; bisection against the analytic CDF is
// the standard approach and needs nothing beyond math.Exp/math.Abs.
type ExponentialPorosityInverter struct {
	MaxIter int
	Tol     float64
}

// NewExponentialPorosityInverter returns an inverter with sane defaults.
func NewExponentialPorosityInverter() ExponentialPorosityInverter {
	return ExponentialPorosityInverter{MaxIter: 60, Tol: 1e-9}
}

// volume returns the cumulative water-holding volume from the surface
// down to depth z, for the given porosity profile.
func (ExponentialPorosityInverter) volume(por0, porDecay, z float64) float64 {
	if porDecay >= 999.9 {
		return por0 * z
	}
	if porDecay <= 0 {
		return por0 * z
	}
	// integral_0^z por0*e^(-u/porDecay) du
	return por0 * porDecay * (1 - math.Exp(-z/porDecay))
}

// InvertDepth implements PorosityInverter: it finds the depth z below
// zInitial at which the cumulative profile volume equals -deltaWater
// (deltaWater <= 0 by convention, a deficit below field capacity; the
// returned depth is always >= 0).
func (e ExponentialPorosityInverter) InvertDepth(por0, porDecay, dzsoil, zInitial, deltaWater float64) float64 {
	target := -deltaWater // deficit as a positive volume
	if target <= 0 {
		return zInitial
	}
	maxIter := e.MaxIter
	if maxIter == 0 {
		maxIter = 60
	}
	tol := e.Tol
	if tol == 0 {
		tol = 1e-9
	}

	lo, hi := 0.0, dzsoil
	if hi <= 0 {
		hi = 1.0
	}
	for e.volume(por0, porDecay, hi) < target && hi < 1e6 {
		hi *= 2
	}
	for i := 0; i < maxIter && hi-lo > tol; i++ {
		mid := 0.5 * (lo + hi)
		if e.volume(por0, porDecay, mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return zInitial + 0.5*(lo+hi)
}
