package function

import (
	"errors"

	"github.com/katalvlaran/lvroot/matrix"
)

// ErrJacobianShape is returned when the destination of EvaluateJacobian is not
// OutputArity×InputArity.
var ErrJacobianShape = errors.New("function: jacobian shape does not match arity")

// Func is a scalar function of one variable.
type Func interface {
	Evaluate(x float64) float64
}

// DifferentiableFunc is a Func that can also evaluate its derivatives.
//
// EvaluateDerivative panics when order is outside [1, DerivativeCount()];
// that is a programming error, not a runtime condition.
type DifferentiableFunc interface {
	Func
	DerivativeCount() int
	EvaluateDerivative(x float64, order int) float64
}

// VectorFunc maps InputArity values to OutputArity values.
// Evaluate writes into output, which the caller sizes to OutputArity.
type VectorFunc interface {
	InputArity() int
	OutputArity() int
	Evaluate(input, output []float64)
}

// DifferentiableVectorFunc can also fill its Jacobian: entry (i, j) is ∂out_i/∂in_j.
type DifferentiableVectorFunc interface {
	VectorFunc
	EvaluateJacobian(input []float64, jacobian matrix.Matrix) error
}
