package function

import "fmt"

// Scalar adapts a plain closure to Func.
type Scalar func(float64) float64

// Evaluate returns f(x).
func (f Scalar) Evaluate(x float64) float64 { return f(x) }

// Differentiable is a closure together with closures for its first
// len(Derivatives) derivatives (Derivatives[0] is f', Derivatives[1] is f'', ...).
type Differentiable struct {
	F           func(float64) float64
	Derivatives []func(float64) float64
}

var (
	_ Func               = Scalar(nil)
	_ DifferentiableFunc = Differentiable{}
)

// Evaluate returns F(x).
func (d Differentiable) Evaluate(x float64) float64 { return d.F(x) }

// DerivativeCount returns len(Derivatives).
func (d Differentiable) DerivativeCount() int { return len(d.Derivatives) }

// EvaluateDerivative returns the order-th derivative at x.
// Panics when order is outside [1, DerivativeCount()].
func (d Differentiable) EvaluateDerivative(x float64, order int) float64 {
	if order < 1 || order > len(d.Derivatives) {
		panic(fmt.Sprintf("function: derivative order %d out of range [1,%d]", order, len(d.Derivatives)))
	}

	return d.Derivatives[order-1](x)
}
