package roots

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/matrix"
	"gonum.org/v1/gonum/floats"
)

// GlobalNewton solves F(x) = 0 for a square differentiable vector function with
// Newton's method globalized by a backtracking line search on ½‖F‖².
//
// Implementation (per iteration):
//   - Stage 1: evaluate J(x), the gradient g = Jᵀ·F and solve J·p = −F with the
//     configured LinearSolver (LU by default).
//   - Stage 2: line search along p (see lineSearch).
//   - Stage 3: converged when ‖F‖∞ < FunctionTolerance; after a stall, the relative
//     gradient decides between StalledAtMinimum (< 1e-6) and Converged; after progress,
//     a relative change of x below ε also counts as Converged.
//
// A singular Jacobian is tolerated once: the step becomes p = −g = −Jᵀ·F, steepest
// descent on ½‖F‖², rather than p = −F from substituting the identity for J. A second
// consecutive singular Jacobian is returned as an error wrapping matrix.ErrSingular.
//
// A stall is reported as Converged unless the relative gradient is small, so a
// Converged Result may carry a large Residual; check Residual when that matters.
//
// Returns:
//   - Result with Status Converged or StalledAtMinimum and a nil error, or
//   - Result with Status Exhausted and an error wrapping ErrRootNotFound after
//     MaxIterations (default 200).
//
// Errors:
//   - ErrNilFunction, ErrArityMismatch, ErrNotFinite, option errors, Jacobian evaluation errors,
//     matrix.ErrSingular (twice in a row), hook errors.
func GlobalNewton(f function.DifferentiableVectorFunc, x0 []float64, opts ...Option) (Result, error) {
	const tag = "GlobalNewton"
	o, err := newOptions(opts, DefaultMaxIterationsND)
	if err != nil {
		return Result{}, rootsErrorf(tag, err)
	}
	if f == nil {
		return Result{}, rootsErrorf(tag, ErrNilFunction)
	}
	n, err := checkSquare(f, x0)
	if err != nil {
		return Result{}, rootsErrorf(tag, err)
	}
	solver := o.LinearSolver
	if solver == nil {
		solver = matrix.NewLUSolver()
	}

	st := newState(f, x0)
	if err = st.checkFinite(); err != nil {
		return st.result(Exhausted, 0), rootsErrorf(tag, err)
	}
	if st.residual() < initialFunctionTolerance {
		return st.result(Converged, 0), nil
	}
	jac, err := matrix.NewDense(n, n)
	if err != nil {
		return st.result(Exhausted, 0), rootsErrorf(tag, err)
	}
	stpmax := maxStep(st.x)

	singular := 0
	var g, p []float64
	var stalled bool
	for it := 1; it <= o.MaxIterations; it++ {
		if err = f.EvaluateJacobian(st.x, jac); err != nil {
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}
		if g, err = matrix.MatTVec(jac, st.fvec); err != nil {
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}

		err = solver.Initialize(jac)
		switch {
		case err == nil:
			singular = 0
			if p, err = matrix.SolveVec(solver, negated(st.fvec), false); err != nil {
				return st.result(Exhausted, it), rootsErrorf(tag, err)
			}
		case errors.Is(err, matrix.ErrSingular):
			singular++
			if singular > 1 {
				return st.result(Exhausted, it), rootsErrorf(tag, fmt.Errorf("iteration %d: %w", it, err))
			}
			o.debug("singular jacobian, steepest descent step", "solver", tag, "iter", it)
			p = negated(g)
		default:
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}

		if stalled, err = st.step(g, p, stpmax); err != nil {
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}
		if err = o.iterate(tag, it, st.residual()); err != nil {
			return st.result(Exhausted, it), err
		}
		if st.residual() < o.FunctionTolerance {
			return st.result(Converged, it), nil
		}
		if stalled {
			return st.result(st.stallStatus(g, &o, tag), it), nil
		}
		if relativeChange(st.x, st.xold) < epsilon {
			return st.result(Converged, it), nil
		}
	}

	return st.result(Exhausted, o.MaxIterations),
		rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}

// state is the working set shared by the multidimensional solvers.
// fvec always holds F(x) and fx = ½‖fvec‖².
type state struct {
	f          function.VectorFunc
	x, xold    []float64
	fvec, fold []float64
	fx, fxold  float64
}

func newState(f function.VectorFunc, x0 []float64) *state {
	n := len(x0)
	st := &state{
		f:    f,
		x:    append([]float64(nil), x0...),
		xold: make([]float64, n),
		fvec: make([]float64, n),
		fold: make([]float64, n),
	}
	st.fx = function.Merit(f, st.x, st.fvec)

	return st
}

// step saves the current point, runs the line search along p and keeps fvec
// consistent with x afterwards. A direction that is not a descent direction is
// reported as a stall at the current point.
func (st *state) step(g, p []float64, stpmax float64) (bool, error) {
	copy(st.xold, st.x)
	copy(st.fold, st.fvec)
	st.fxold = st.fx

	merit := func(x []float64) float64 { return function.Merit(st.f, x, st.fvec) }
	fx, stalled, err := lineSearch(merit, st.xold, st.fxold, g, p, st.x, stpmax)
	if errors.Is(err, ErrNotDescent) {
		fx, stalled, err = st.fxold, true, nil
		copy(st.x, st.xold)
	}
	if err != nil {
		return false, err
	}
	st.fx = fx
	if stalled {
		copy(st.fvec, st.fold)
	}

	return stalled, nil
}

// stallStatus classifies a stalled line search by the relative gradient at x.
// A small gradient means a minimum of ½‖F‖² that is not a root (StalledAtMinimum).
// A large gradient is reported as Converged, even when Residual is far from zero.
func (st *state) stallStatus(g []float64, o *Options, tag string) Status {
	test := relativeGradient(g, st.x, st.fx)
	if test < gradientTolerance {
		o.debug("stalled at a minimum of the merit function", "solver", tag, "gradient", test, "residual", st.residual())
		return StalledAtMinimum
	}

	return Converged
}

// checkFinite rejects a start point where F is NaN or infinite.
func (st *state) checkFinite() error {
	for i, v := range st.fvec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("F(x0)[%d] = %g: %w", i, v, ErrNotFinite)
		}
	}

	return nil
}

func (st *state) residual() float64 { return normInf(st.fvec) }

func (st *state) result(s Status, iterations int) Result {
	return Result{
		X:          append([]float64(nil), st.x...),
		Status:     s,
		Iterations: iterations,
		Residual:   st.residual(),
	}
}

// checkSquare verifies InputArity = OutputArity = len(x0) ≥ 1 and returns n.
func checkSquare(f function.VectorFunc, x0 []float64) (int, error) {
	n := f.InputArity()
	if n < 1 || f.OutputArity() != n || len(x0) != n {
		return 0, fmt.Errorf("in=%d out=%d start=%d: %w", n, f.OutputArity(), len(x0), ErrArityMismatch)
	}

	return n, nil
}

// negated returns −v as a new slice.
func negated(v []float64) []float64 {
	out := make([]float64, len(v))
	floats.ScaleTo(out, -1, v)

	return out
}
