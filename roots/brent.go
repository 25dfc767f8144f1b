package roots

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/function"
)

// Brent finds a root of f in b with Brent's method: inverse quadratic interpolation
// (secant when only two distinct points are known) safeguarded by bisection.
//
// Implementation:
//   - b is always the best estimate; c lies on the other side of the root; a is the previous b.
//   - The convergence tolerance is 2·ulp(b) + tol/2.
//   - An interpolated step d is accepted only if it stays well inside the bracket and is
//     smaller than half the step before last (e); otherwise the iteration bisects.
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket, ErrBadTolerance, ErrBadIterations.
//   - ErrNotBracketed when f(Min) and f(Max) have the same non-zero sign.
//   - ErrRootNotFound when the iteration budget (default 100) is exhausted.
func Brent(f function.Func, br Bracket, opts ...Option) (float64, error) {
	const tag = "Brent"
	o, err := newOptions(opts, DefaultMaxIterations1D)
	if err != nil {
		return math.NaN(), rootsErrorf(tag, err)
	}
	fa, fb, err := checkBracketed(tag, f, br)
	if err != nil {
		return math.NaN(), err
	}
	if fa == 0 {
		return br.Min, nil
	}
	tol := o.tolerance(br)

	a, b, c := br.Min, br.Max, br.Max
	fc := fb
	var d, e float64 // last step and the step before it
	var tol1, xm, p, q, r, s float64
	for it := 1; it <= o.MaxIterations; it++ {
		if sameSign(fb, fc) {
			// Root is between a and b: make c the old a.
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 = 2*ulp(b) + 0.5*tol
		xm = 0.5 * (c - b)
		if err = o.iterate(tag, it, math.Abs(fb), "x", b); err != nil {
			return b, err
		}
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			s = fb / fa
			if a == c {
				// Secant.
				p = 2 * xm * s
				q = 1 - s
			} else {
				// Inverse quadratic interpolation.
				q = fa / fc
				r = fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f.Evaluate(b)
	}

	return b, rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}
