package function

import "github.com/katalvlaran/lvroot/matrix"

// System is a square vector function built from closures.
//
// F writes F(in) into out. J, when non-nil, fills the Arity×Arity Jacobian;
// when nil, EvaluateJacobian falls back to forward differences with Step
// (0 selects DefaultStep).
type System struct {
	Arity int
	F     func(in, out []float64)
	J     func(in []float64, jac matrix.Matrix) error
	Step  float64
}

var _ DifferentiableVectorFunc = System{}

// InputArity returns Arity.
func (s System) InputArity() int { return s.Arity }

// OutputArity returns Arity.
func (s System) OutputArity() int { return s.Arity }

// Evaluate calls F.
func (s System) Evaluate(in, out []float64) { s.F(in, out) }

// EvaluateJacobian calls J, or differentiates F numerically when J is nil.
func (s System) EvaluateJacobian(in []float64, jac matrix.Matrix) error {
	if s.J != nil {
		if err := checkJacobianShape(s, jac); err != nil {
			return err
		}

		return s.J(in, jac)
	}

	return forwardDifference(s, in, jac, s.Step)
}
