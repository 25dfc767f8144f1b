// Package function defines the function abstractions consumed by the root finders
// and a handful of adapters that turn plain Go closures into them.
//
// Interfaces:
//
//   - Func / DifferentiableFunc for scalar functions f: ℝ → ℝ.
//   - VectorFunc / DifferentiableVectorFunc for vector functions F: ℝⁿ → ℝᵐ.
//
// Adapters:
//
//   - Scalar wraps func(float64) float64.
//   - Differentiable pairs a closure with closures for its derivatives.
//   - Polynomial evaluates ascending coefficients with Horner's rule.
//   - System wraps a vector closure with an optional analytic Jacobian.
//   - FiniteDifference upgrades any VectorFunc to a DifferentiableVectorFunc.
//
// Functions are evaluated synchronously; a function shared between goroutines must
// itself be safe for concurrent use.
package function
