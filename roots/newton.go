package roots

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/function"
)

// UnboundedNewtonRaphson iterates x ← x − f(x)/f'(x) from the midpoint of b.
//
// The ends of b need not bracket a sign change: b only bounds where the iteration may go.
// The method never bisects, which makes it the only one here able to converge to a
// tangent (double) root such as x² at 0, and also the only one that can fail on
// well-bracketed input.
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket, ErrNotDifferentiable, ErrBadTolerance, ErrBadIterations.
//   - ErrRootNotFound when an iterate leaves b or is not finite, or the budget
//     (default 100) is exhausted.
func UnboundedNewtonRaphson(f function.DifferentiableFunc, b Bracket, opts ...Option) (float64, error) {
	const tag = "UnboundedNewtonRaphson"
	o, err := newOptions(opts, DefaultMaxIterations1D)
	if err != nil {
		return math.NaN(), rootsErrorf(tag, err)
	}
	if err = checkDifferentiable(tag, f, b); err != nil {
		return math.NaN(), err
	}
	tol := o.tolerance(b)

	x := b.Mid()
	var fx, dx float64
	for it := 1; it <= o.MaxIterations; it++ {
		fx = f.Evaluate(x)
		if fx == 0 {
			return x, nil
		}
		dx = fx / f.EvaluateDerivative(x, 1)
		x -= dx
		if err = o.iterate(tag, it, math.Abs(fx), "x", x); err != nil {
			return x, err
		}
		if math.IsNaN(x) || !b.Contains(x) {
			o.debug("newton iterate left bracket", "solver", tag, "iter", it, "x", x, "bracket", b.String())
			return x, rootsErrorf(tag, fmt.Errorf("iterate %g outside %v: %w", x, b, ErrRootNotFound))
		}
		if math.Abs(dx) <= tol {
			return x, nil
		}
	}

	return x, rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}

// BoundedNewtonRaphson combines Newton steps with bisection on a bracketing interval.
//
// Implementation:
//   - xl and xh are the ends where f < 0 and f > 0; both move inward after every step.
//   - A Newton step is taken only if it lands inside [xl, xh] (tested as
//     ((x−xh)·f' − f)·((x−xl)·f' − f) ≤ 0) and |2f| ≤ |dxold·f'|, i.e. it at least halves the
//     step before last. Otherwise the iteration bisects.
//   - A step that does not change x in floating point ends the search at x.
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket, ErrNotDifferentiable, ErrBadTolerance, ErrBadIterations.
//   - ErrNotBracketed when f(Min) and f(Max) have the same non-zero sign.
//   - ErrRootNotFound when the budget (default 100) is exhausted.
func BoundedNewtonRaphson(f function.DifferentiableFunc, b Bracket, opts ...Option) (float64, error) {
	const tag = "BoundedNewtonRaphson"
	o, err := newOptions(opts, DefaultMaxIterations1D)
	if err != nil {
		return math.NaN(), rootsErrorf(tag, err)
	}
	if err = checkDifferentiable(tag, f, b); err != nil {
		return math.NaN(), err
	}
	fl, fh, err := checkBracketed(tag, f, b)
	if err != nil {
		return math.NaN(), err
	}
	if fl == 0 {
		return b.Min, nil
	}
	if fh == 0 {
		return b.Max, nil
	}
	tol := o.tolerance(b)

	xl, xh := b.Min, b.Max
	if fl > 0 {
		xl, xh = b.Max, b.Min
	}
	x := b.Mid()
	dxold := b.Width()
	dx := dxold
	fx := f.Evaluate(x)
	df := f.EvaluateDerivative(x, 1)
	var prev float64
	for it := 1; it <= o.MaxIterations; it++ {
		if fx == 0 {
			return x, nil
		}
		if ((x-xh)*df-fx)*((x-xl)*df-fx) > 0 || math.Abs(2*fx) > math.Abs(dxold*df) {
			dxold = dx
			dx = 0.5 * (xh - xl)
			x = xl + dx
			o.debug("bisection fallback", "solver", tag, "iter", it, "x", x)
			if xl == x {
				return x, nil
			}
		} else {
			dxold = dx
			dx = fx / df
			prev = x
			x -= dx
			if prev == x {
				return x, nil
			}
		}
		if err = o.iterate(tag, it, math.Abs(fx), "x", x); err != nil {
			return x, err
		}
		if math.Abs(dx) < tol {
			return x, nil
		}

		fx = f.Evaluate(x)
		df = f.EvaluateDerivative(x, 1)
		if fx < 0 {
			xl = x
		} else {
			xh = x
		}
	}

	return x, rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}

func checkDifferentiable(tag string, f function.DifferentiableFunc, b Bracket) error {
	if f == nil {
		return rootsErrorf(tag, ErrNilFunction)
	}
	if err := b.Validate(); err != nil {
		return rootsErrorf(tag, err)
	}
	if f.DerivativeCount() < 1 {
		return rootsErrorf(tag, ErrNotDifferentiable)
	}

	return nil
}
