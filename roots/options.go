package roots

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/lvroot/matrix"
)

const (
	// DefaultMaxIterations1D is the iteration budget of the one-dimensional solvers.
	DefaultMaxIterations1D = 100

	// DefaultMaxIterationsND is the iteration budget of GlobalNewton and Broyden.
	DefaultMaxIterationsND = 200

	// DefaultFunctionTolerance is the ‖F‖∞ threshold at which a multidimensional solve converges.
	DefaultFunctionTolerance = 1e-8
)

// Option configures a solver call.
// Use with Brent(f, b, opts...), GlobalNewton(f, x0, opts...), etc.
type Option func(*Options)

// Options holds the configurable parameters shared by all solvers.
// Fields a solver does not use are ignored by it.
type Options struct {
	// Tolerance is the absolute x tolerance of the one-dimensional solvers.
	// Zero derives it from the bracket: 0.5·(|Min|+|Max|)·ε.
	Tolerance float64

	// MaxIterations caps the number of iterations. Zero selects the solver's default
	// (DefaultMaxIterations1D or DefaultMaxIterationsND).
	MaxIterations int

	// FunctionTolerance is the ‖F‖∞ convergence threshold of GlobalNewton and Broyden.
	FunctionTolerance float64

	// LinearSolver solves J·p = −F in GlobalNewton. Nil selects a fresh matrix.LUSolver.
	// Broyden always uses its own matrix.QRSolver.
	LinearSolver matrix.LinearSolver

	// Logger, if non-nil, receives Debug records per iteration and for fallbacks.
	Logger *slog.Logger

	// OnIterate, if non-nil, is invoked after every iteration with the iteration number
	// (1-based) and the current residual (|f(x)| or ‖F(x)‖∞).
	// Returning an error aborts the solver with that error.
	OnIterate func(iter int, residual float64) error

	toleranceSet bool
	iterationSet bool
}

// DefaultOptions returns an Options struct with:
//   - bracket-derived tolerance
//   - per-solver iteration budget
//   - FunctionTolerance = DefaultFunctionTolerance
//   - LU linear solver, no logger, no hook
func DefaultOptions() Options {
	return Options{
		Tolerance:         0,
		MaxIterations:     0,
		FunctionTolerance: DefaultFunctionTolerance,
		LinearSolver:      nil,
		Logger:            nil,
		OnIterate:         nil,
	}
}

// WithTolerance returns an Option that sets the absolute x tolerance.
// tol must be positive and finite; other values make the solver return ErrBadTolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		o.Tolerance = tol
		o.toleranceSet = true
	}
}

// WithMaxIterations returns an Option that sets the iteration budget (n >= 1).
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
		o.iterationSet = true
	}
}

// WithFunctionTolerance returns an Option that sets the ‖F‖∞ convergence threshold.
func WithFunctionTolerance(tol float64) Option {
	return func(o *Options) {
		o.FunctionTolerance = tol
	}
}

// WithLinearSolver returns an Option that selects the solver GlobalNewton factors
// its Jacobian with. Passing nil keeps the LU default.
func WithLinearSolver(s matrix.LinearSolver) Option {
	return func(o *Options) {
		if s != nil {
			o.LinearSolver = s
		}
	}
}

// WithLogger returns an Option that installs a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnIterate returns an Option that installs a per-iteration hook.
func WithOnIterate(fn func(iter int, residual float64) error) Option {
	return func(o *Options) {
		o.OnIterate = fn
	}
}

// newOptions applies opts over the defaults and validates the result.
func newOptions(opts []Option, defaultIterations int) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.toleranceSet && !isPositiveFinite(o.Tolerance) {
		return o, ErrBadTolerance
	}
	if !isPositiveFinite(o.FunctionTolerance) {
		return o, ErrBadTolerance
	}
	if o.iterationSet && o.MaxIterations < 1 {
		return o, ErrBadIterations
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = defaultIterations
	}

	return o, nil
}

// tolerance returns the configured tolerance or the bracket-derived default.
func (o *Options) tolerance(b Bracket) float64 {
	if o.toleranceSet {
		return o.Tolerance
	}

	return defaultTolerance(b)
}

// iterate emits a Debug record (extra key/value pairs appended) and runs the hook, if any.
func (o *Options) iterate(tag string, iter int, residual float64, kv ...any) error {
	if o.Logger != nil {
		args := append([]any{"solver", tag, "iter", iter, "residual", residual}, kv...)
		o.Logger.Debug("iteration", args...)
	}
	if o.OnIterate == nil {
		return nil
	}
	if err := o.OnIterate(iter, residual); err != nil {
		return rootsErrorf(tag, err)
	}

	return nil
}

// debug logs msg at Debug level when a logger is installed.
func (o *Options) debug(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}

func isPositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
