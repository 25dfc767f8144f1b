package roots

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/function"
)

// Subdivide finds a root of f in b by bisection.
//
// The side on which f is negative is tracked, so every midpoint replaces exactly one end
// and the root stays bracketed. The search stops when the half-width drops to the
// tolerance or a midpoint evaluates to exactly zero. Convergence is linear and
// guaranteed for continuous f.
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket, ErrBadTolerance, ErrBadIterations.
//   - ErrNotBracketed when f(Min) and f(Max) have the same non-zero sign.
//   - ErrRootNotFound when the iteration budget (default 100) is exhausted.
func Subdivide(f function.Func, b Bracket, opts ...Option) (float64, error) {
	const tag = "Subdivide"
	o, err := newOptions(opts, DefaultMaxIterations1D)
	if err != nil {
		return math.NaN(), rootsErrorf(tag, err)
	}
	fmin, fmax, err := checkBracketed(tag, f, b)
	if err != nil {
		return math.NaN(), err
	}
	if fmin == 0 {
		return b.Min, nil
	}
	if fmax == 0 {
		return b.Max, nil
	}
	tol := o.tolerance(b)

	// x is the end where f < 0; dx points from it to the other end.
	x, dx := b.Min, b.Width()
	if fmin > 0 {
		x, dx = b.Max, -b.Width()
	}
	var mid, fmid float64
	for it := 1; it <= o.MaxIterations; it++ {
		dx *= 0.5
		mid = x + dx
		fmid = f.Evaluate(mid)
		if fmid <= 0 {
			x = mid
		}
		if err = o.iterate(tag, it, math.Abs(fmid), "x", mid); err != nil {
			return mid, err
		}
		if math.Abs(dx) <= tol || fmid == 0 {
			return mid, nil
		}
	}

	return mid, rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}

// checkBracketed validates f and b and returns f(Min), f(Max), or ErrNotBracketed.
func checkBracketed(tag string, f function.Func, b Bracket) (float64, float64, error) {
	if f == nil {
		return 0, 0, rootsErrorf(tag, ErrNilFunction)
	}
	if err := b.Validate(); err != nil {
		return 0, 0, rootsErrorf(tag, err)
	}
	fmin, fmax := f.Evaluate(b.Min), f.Evaluate(b.Max)
	if sameSign(fmin, fmax) || math.IsNaN(fmin) || math.IsNaN(fmax) {
		return fmin, fmax, rootsErrorf(tag,
			fmt.Errorf("f(%g)=%g, f(%g)=%g: %w", b.Min, fmin, b.Max, fmax, ErrNotBracketed))
	}

	return fmin, fmax, nil
}
