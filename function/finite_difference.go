package function

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvroot/matrix"
)

// DefaultStep is the relative forward-difference step, √ε.
var DefaultStep = math.Sqrt(math.Nextafter(1, 2) - 1)

const opJacobian = "EvaluateJacobian"

// FiniteDifference wraps a VectorFunc and estimates its Jacobian by forward differences.
type FiniteDifference struct {
	f    VectorFunc
	step float64
}

var _ DifferentiableVectorFunc = (*FiniteDifference)(nil)

// NewFiniteDifference returns f with a numerical Jacobian. step ≤ 0 (or NaN) selects DefaultStep.
func NewFiniteDifference(f VectorFunc, step float64) *FiniteDifference {
	return &FiniteDifference{f: f, step: step}
}

// InputArity delegates to the wrapped function.
func (d *FiniteDifference) InputArity() int { return d.f.InputArity() }

// OutputArity delegates to the wrapped function.
func (d *FiniteDifference) OutputArity() int { return d.f.OutputArity() }

// Evaluate delegates to the wrapped function.
func (d *FiniteDifference) Evaluate(in, out []float64) { d.f.Evaluate(in, out) }

// EvaluateJacobian fills jac column by column:
// J[:, j] ≈ (F(x + h_j·e_j) − F(x)) / h_j with h_j = step·|x_j| (step when x_j = 0).
//
// Errors:
//   - ErrJacobianShape when jac is not OutputArity×InputArity.
//   - matrix.ErrNaNInf when F produces a non-finite difference quotient.
//
// Complexity: InputArity+1 evaluations of F.
func (d *FiniteDifference) EvaluateJacobian(in []float64, jac matrix.Matrix) error {
	return forwardDifference(d.f, in, jac, d.step)
}

func checkJacobianShape(f VectorFunc, jac matrix.Matrix) error {
	if jac == nil {
		return fmt.Errorf("%s: %w", opJacobian, matrix.ErrNilMatrix)
	}
	if jac.Rows() != f.OutputArity() || jac.Cols() != f.InputArity() {
		return fmt.Errorf("%s: %dx%d for %dx%d: %w",
			opJacobian, jac.Rows(), jac.Cols(), f.OutputArity(), f.InputArity(), ErrJacobianShape)
	}

	return nil
}

func forwardDifference(f VectorFunc, x []float64, jac matrix.Matrix, step float64) error {
	if err := checkJacobianShape(f, jac); err != nil {
		return err
	}
	if !(step > 0) {
		step = DefaultStep
	}
	n, m := f.InputArity(), f.OutputArity()

	f0 := make([]float64, m)
	f1 := make([]float64, m)
	col := make([]float64, m)
	xh := append([]float64(nil), x...)
	f.Evaluate(x, f0)

	dense, isDense := jac.(*matrix.Dense)
	var i, j int
	var tmp, h float64
	for j = 0; j < n; j++ {
		tmp = xh[j]
		h = step * math.Abs(tmp)
		if h == 0 {
			h = step
		}
		xh[j] = tmp + h
		h = xh[j] - tmp // exactly representable step
		f.Evaluate(xh, f1)
		xh[j] = tmp

		for i = 0; i < m; i++ {
			col[i] = (f1[i] - f0[i]) / h
		}
		if isDense {
			if err := dense.SetCol(j, col); err != nil {
				return fmt.Errorf("%s: %w", opJacobian, err)
			}
			continue
		}
		for i = 0; i < m; i++ {
			if err := jac.Set(i, j, col[i]); err != nil {
				return fmt.Errorf("%s: %w", opJacobian, err)
			}
		}
	}

	return nil
}
