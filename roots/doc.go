// Package roots locates zeros of scalar and vector functions.
//
// One-dimensional solvers work on a Bracket [Min, Max]:
//
//   - Subdivide: bisection. Linear, unconditionally convergent.
//   - Brent: inverse quadratic interpolation with bisection fallback.
//   - BoundedNewtonRaphson: Newton steps guarded by bisection; needs f'.
//   - UnboundedNewtonRaphson: pure Newton from the midpoint; needs f'. It may fail on
//     good input but is the only solver that reaches tangent (double) roots.
//
// BracketOutward and BracketInward build brackets: the first widens an interval until f
// changes sign, the second lazily yields every sign-changing piece of a subdivision.
//
// Multidimensional solvers work on square vector functions F: ℝⁿ → ℝⁿ from a start
// vector and share a backtracking line search on the merit function ½‖F‖²:
//
//   - GlobalNewton: full Jacobian and a linear solve (matrix.LinearSolver) per iteration.
//   - Broyden: a QR-factored Jacobian approximation kept current by rank-one updates.
//
// Errors:
//
// Invalid input (nil function, bad bracket, tolerance, segment count or arity) wraps
// ErrInvalidInput and is reported before any evaluation. A failed search is recoverable
// and distinguished with errors.Is:
//
//	x, err := roots.Brent(f, roots.Bracket{Min: 0, Max: 2})
//	switch {
//	case errors.Is(err, roots.ErrNotBracketed):
//		// widen with BracketOutward and retry
//	case errors.Is(err, roots.ErrRootNotFound):
//		// budget exhausted; x is the last estimate
//	}
//
// A multidimensional Result with Status StalledAtMinimum is not an error: the solver
// stopped at a local minimum of ½‖F‖² that is not a root. Retry from another start.
//
// All solvers are synchronous and keep their state on the call stack, so independent
// calls may run concurrently as long as the functions they evaluate are safe to share.
// Functional options (WithTolerance, WithMaxIterations, WithLogger, WithOnIterate, …)
// tune a single call.
package roots
