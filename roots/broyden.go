package roots

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/matrix"
	"gonum.org/v1/gonum/floats"
)

// Broyden solves F(x) = 0 for a square vector function with Broyden's quasi-Newton
// method: the Jacobian is approximated by B = QTᵀ·R, kept in a matrix.QRSolver and
// corrected by a rank-one secant update each iteration, so a true Jacobian is only
// evaluated on restarts.
//
// Implementation (per iteration):
//   - Restart: evaluate J(x) (f's own Jacobian when f is a DifferentiableVectorFunc,
//     forward differences otherwise) and factor it. A singular J is replaced by the
//     identity once; a second consecutive singular J is an error.
//   - Otherwise: s = x − xold, w = ΔF − B·s with components under the noise floor
//     ε·(|F_i| + |Fold_i|) zeroed; if w ≠ 0, B ← B + w·sᵀ/(s·s) via QRSolver.Update.
//     An update that leaves B singular forces a restart in the same iteration.
//   - Direction: p solves B·p = −F; g = Bᵀ·F. A non-descent p (g·p ≥ 0) forces a restart.
//   - Line search, then the GlobalNewton convergence tests. A stall with B = J(x) is
//     classified by the relative gradient; a stall with an updated B or the identity
//     fallback forces a restart instead.
//
// Returns and errors follow GlobalNewton. WithLinearSolver is ignored.
func Broyden(f function.VectorFunc, x0 []float64, opts ...Option) (Result, error) {
	const tag = broydenTag
	o, err := newOptions(opts, DefaultMaxIterationsND)
	if err != nil {
		return Result{}, rootsErrorf(tag, err)
	}
	if f == nil {
		return Result{}, rootsErrorf(tag, ErrNilFunction)
	}
	if _, err = checkSquare(f, x0); err != nil {
		return Result{}, rootsErrorf(tag, err)
	}
	df, ok := f.(function.DifferentiableVectorFunc)
	if !ok {
		df = function.NewFiniteDifference(f, 0)
	}

	st := newState(f, x0)
	if err = st.checkFinite(); err != nil {
		return st.result(Exhausted, 0), rootsErrorf(tag, err)
	}
	if st.residual() < initialFunctionTolerance {
		return st.result(Converged, 0), nil
	}
	b, err := newBroyden(st, df, &o)
	if err != nil {
		return st.result(Exhausted, 0), rootsErrorf(tag, err)
	}
	stpmax := maxStep(st.x)

	var g, p []float64
	var stalled bool
	for it := 1; it <= o.MaxIterations; it++ {
		if b.restart {
			err = b.refactor(it)
		} else {
			err = b.secant(it)
		}
		if err != nil {
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}
		if g, p, err = b.direction(); err != nil {
			return st.result(Exhausted, it), rootsErrorf(tag, err)
		}
		if !b.descends(it, g, p) {
			continue
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
			if b.exact {
				return st.result(st.stallStatus(g, &o, tag), it), nil
			}
			o.debug("stalled with approximate jacobian, restart", "solver", tag, "iter", it)
			b.restart = true
			continue
		}
		if relativeChange(st.x, st.xold) < epsilon {
			return st.result(Converged, it), nil
		}
	}

	return st.result(Exhausted, o.MaxIterations),
		rootsErrorf(tag, fmt.Errorf("%d iterations: %w", o.MaxIterations, ErrRootNotFound))
}

// broyden holds the factored Jacobian approximation between iterations.
//
// restart asks the next iteration for a fresh J(x). exact reports whether
// B currently equals J(x): it is set by a successful factorization and
// cleared by the identity fallback and by every secant step.
type broyden struct {
	*state
	df       function.DifferentiableVectorFunc
	o        *Options
	jac      *matrix.Dense
	qr       *matrix.QRSolver
	s, w     []float64
	restart  bool
	exact    bool
	singular int // consecutive singular Jacobians
}

const broydenTag = "Broyden"

func newBroyden(st *state, df function.DifferentiableVectorFunc, o *Options) (*broyden, error) {
	n := len(st.x)
	jac, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	return &broyden{
		state:   st,
		df:      df,
		o:       o,
		jac:     jac,
		qr:      matrix.NewQRSolver(),
		s:       make([]float64, n),
		w:       make([]float64, n),
		restart: true,
	}, nil
}

// refactor evaluates and factors J(x). The first singular J is replaced by the
// identity; the second in a row is returned wrapping matrix.ErrSingular.
func (b *broyden) refactor(it int) error {
	b.o.debug("jacobian restart", "solver", broydenTag, "iter", it)
	b.restart = false
	b.exact = false
	if err := b.df.EvaluateJacobian(b.x, b.jac); err != nil {
		return err
	}
	err := b.qr.Initialize(b.jac)
	switch {
	case err == nil:
		b.singular = 0
		b.exact = true
		return nil
	case errors.Is(err, matrix.ErrSingular):
		b.singular++
		if b.singular > 1 {
			return fmt.Errorf("iteration %d: %w", it, err)
		}
		b.o.debug("singular jacobian, identity fallback", "solver", broydenTag, "iter", it)
		return b.qr.InitializeIdentity(len(b.x))
	default:
		return err
	}
}

// secant applies the rank-one update B ← B + w·sᵀ/(s·s) for the last step.
// Components of w under the noise floor are zeroed and an all-zero w leaves B alone.
func (b *broyden) secant(it int) error {
	b.exact = false
	floats.SubTo(b.s, b.x, b.xold)
	bs, err := applyFactors(b.qr, b.s)
	if err != nil {
		return err
	}
	skip := true
	for i := range b.w {
		b.w[i] = b.fvec[i] - b.fold[i] - bs[i]
		if math.Abs(b.w[i]) < epsilon*(math.Abs(b.fvec[i])+math.Abs(b.fold[i])) {
			b.w[i] = 0
		}
		if b.w[i] != 0 {
			skip = false
		}
	}
	if skip {
		b.o.debug("secant update skipped", "solver", broydenTag, "iter", it)
		return nil
	}

	floats.Scale(1/floats.Dot(b.s, b.s), b.s)
	err = b.qr.Update(b.w, b.s)
	if errors.Is(err, matrix.ErrSingular) {
		b.o.debug("singular secant update, jacobian restart", "solver", broydenTag, "iter", it)
		return b.refactor(it)
	}

	return err
}

// direction returns g = Bᵀ·F = Rᵀ·(QT·F) and p solving B·p = −F.
func (b *broyden) direction() ([]float64, []float64, error) {
	qtf, err := matrix.MatVec(b.qr.QT(), b.fvec)
	if err != nil {
		return nil, nil, err
	}
	g, err := matrix.MatTVec(b.qr.R(), qtf)
	if err != nil {
		return nil, nil, err
	}
	p, err := matrix.SolveVec(b.qr, negated(b.fvec), false)
	if err != nil {
		return nil, nil, err
	}

	return g, p, nil
}

// descends reports whether g·p < 0. Otherwise it schedules a restart.
func (b *broyden) descends(it int, g, p []float64) bool {
	if floats.Dot(g, p) < 0 {
		return true
	}
	b.o.debug("not a descent direction, jacobian restart", "solver", broydenTag, "iter", it)
	b.restart = true

	return false
}

// applyFactors returns B·s = QTᵀ·(R·s) for the factored approximation B.
func applyFactors(qr *matrix.QRSolver, s []float64) ([]float64, error) {
	rs, err := matrix.MatVec(qr.R(), s)
	if err != nil {
		return nil, err
	}

	return matrix.MatTVec(qr.QT(), rs)
}
