package roots

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// armijo is the sufficient-decrease constant α in f(x+t·p) ≤ f(x) + α·t·(g·p).
const armijo = 1e-4

// lineSearch finds a damping factor t ∈ (0, 1] along the direction p from xold such that
// the merit value decreases sufficiently, writing xold + t·p into x.
//
// Implementation:
//   - Stage 1: scale p down in place when ‖p‖₂ > stpmax; reject slope = g·p ≥ 0.
//   - Stage 2: try t = 1; on failure minimize the quadratic model through f(0), f'(0), f(1);
//     on later failures the cubic through the last two trials. Each new t is clipped to
//     [0.1·t, 0.5·t].
//   - Stage 3: once t drops below ε / max_i(|p_i| / max(|xold_i|, 1)) the search stalls:
//     x is restored to xold and fold is returned with stalled = true.
//
// Returns:
//   - the merit value at x, and whether the search stalled. A stall is an outcome, not an
//     error: xold is (numerically) a stationary point along p.
//
// Errors:
//   - ErrNotDescent when g·p ≥ 0 (or NaN).
func lineSearch(merit func(x []float64) float64, xold []float64, fold float64, g, p, x []float64, stpmax float64) (float64, bool, error) {
	if norm := floats.Norm(p, 2); norm > stpmax {
		floats.Scale(stpmax/norm, p)
	}
	slope := floats.Dot(g, p)
	if !(slope < 0) {
		return fold, false, fmt.Errorf("slope %g: %w", slope, ErrNotDescent)
	}

	var test float64
	for i := range p {
		test = math.Max(test, math.Abs(p[i])/math.Max(math.Abs(xold[i]), 1))
	}
	tmin := epsilon / test

	t := 1.0
	var t2, f, f2, tnext float64
	var rhs1, rhs2, a, b, disc float64
	for {
		floats.AddScaledTo(x, xold, t, p)
		f = merit(x)
		if t < tmin {
			copy(x, xold)
			return fold, true, nil
		}
		if f <= fold+armijo*t*slope {
			return f, false, nil
		}

		if t == 1 {
			tnext = -slope / (2 * (f - fold - slope))
		} else {
			rhs1 = f - fold - t*slope
			rhs2 = f2 - fold - t2*slope
			a = (rhs1/(t*t) - rhs2/(t2*t2)) / (t - t2)
			b = (-t2*rhs1/(t*t) + t*rhs2/(t2*t2)) / (t - t2)
			if a == 0 {
				tnext = -slope / (2 * b)
			} else {
				disc = b*b - 3*a*slope
				switch {
				case disc < 0:
					tnext = 0.5 * t
				case b <= 0:
					tnext = (-b + math.Sqrt(disc)) / (3 * a)
				default:
					tnext = -slope / (b + math.Sqrt(disc))
				}
			}
		}
		// Comparisons are written so that a NaN model falls back to 0.1·t.
		if tnext > 0.5*t {
			tnext = 0.5 * t
		}
		t2, f2 = t, f
		if !(tnext >= 0.1*t) {
			tnext = 0.1 * t
		}
		t = tnext
	}
}
