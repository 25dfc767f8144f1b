package main

import (
	"math"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/matrix"
)

// systems are the built-in test problems of the system command.
var systems = map[string]function.System{
	// x² + y² = 4 intersected with y = x; roots ±(√2, √2).
	"circle-line": {
		Arity: 2,
		F: func(in, out []float64) {
			out[0] = in[0]*in[0] + in[1]*in[1] - 4
			out[1] = in[0] - in[1]
		},
		J: func(in []float64, jac matrix.Matrix) error {
			_ = jac.Set(0, 0, 2*in[0])
			_ = jac.Set(0, 1, 2*in[1])
			_ = jac.Set(1, 0, 1)
			return jac.Set(1, 1, -1)
		},
	},
	// Rosenbrock's function in residual form; root (1, 1).
	"rosenbrock": {
		Arity: 2,
		F: func(in, out []float64) {
			out[0] = 10 * (in[1] - in[0]*in[0])
			out[1] = 1 - in[0]
		},
		J: func(in []float64, jac matrix.Matrix) error {
			_ = jac.Set(0, 0, -20*in[0])
			_ = jac.Set(0, 1, 10)
			_ = jac.Set(1, 0, -1)
			return jac.Set(1, 1, 0)
		},
	},
	// y = eˣ intersected with the circle x² + y² = 4.
	"exp-circle": {
		Arity: 2,
		F: func(in, out []float64) {
			out[0] = math.Exp(in[0]) - in[1]
			out[1] = in[0]*in[0] + in[1]*in[1] - 4
		},
		J: func(in []float64, jac matrix.Matrix) error {
			_ = jac.Set(0, 0, math.Exp(in[0]))
			_ = jac.Set(0, 1, -1)
			_ = jac.Set(1, 0, 2*in[0])
			return jac.Set(1, 1, 2*in[1])
		},
	},
	// Three planes meeting at (1, 2, 3); no Jacobian, so it is estimated numerically.
	"planes": {
		Arity: 3,
		F: func(in, out []float64) {
			out[0] = in[0] + in[1] + in[2] - 6
			out[1] = 2*in[0] - in[1] + in[2] - 3
			out[2] = in[0] + 2*in[1] - in[2] - 2
		},
	},
}

// linearSolvers maps --solver values to fresh matrix.LinearSolver instances.
var linearSolvers = map[string]func() matrix.LinearSolver{
	"lu":  func() matrix.LinearSolver { return matrix.NewLUSolver() },
	"qr":  func() matrix.LinearSolver { return matrix.NewQRSolver() },
	"svd": func() matrix.LinearSolver { return matrix.NewSVDSolver(0) },
}
