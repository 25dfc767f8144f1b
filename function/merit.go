package function

import "gonum.org/v1/gonum/floats"

// Merit evaluates F at x into out and returns ½‖F(x)‖², the scalar the
// multidimensional solvers drive to zero. out must have OutputArity elements.
func Merit(f VectorFunc, x, out []float64) float64 {
	f.Evaluate(x, out)

	return 0.5 * floats.Dot(out, out)
}
