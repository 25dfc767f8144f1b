package function_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarAndDifferentiable(t *testing.T) {
	f := function.Scalar(math.Sin)
	assert.InDelta(t, 1.0, f.Evaluate(math.Pi/2), 1e-15)

	d := function.Differentiable{
		F:           func(x float64) float64 { return x * x * x },
		Derivatives: []func(float64) float64{func(x float64) float64 { return 3 * x * x }},
	}
	assert.Equal(t, 8.0, d.Evaluate(2))
	assert.Equal(t, 1, d.DerivativeCount())
	assert.Equal(t, 12.0, d.EvaluateDerivative(2, 1))
	assert.Panics(t, func() { d.EvaluateDerivative(2, 2) })
	assert.Panics(t, func() { d.EvaluateDerivative(2, 0) })
}

func TestPolynomial(t *testing.T) {
	p := function.Polynomial{-2, 0, 1} // x² − 2

	tests := []struct {
		name  string
		x     float64
		order int
		want  float64
	}{
		{"value at 0", 0, 0, -2},
		{"value at 3", 3, 0, 7},
		{"first derivative", 3, 1, 6},
		{"second derivative", 3, 2, 2},
		{"beyond degree", 3, 3, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.order == 0 {
				assert.Equal(t, tc.want, p.Evaluate(tc.x))
				return
			}
			assert.Equal(t, tc.want, p.EvaluateDerivative(tc.x, tc.order))
		})
	}

	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, 1, function.Polynomial{1, 2, 0, 0}.Degree())
	assert.Equal(t, 0, function.Polynomial{}.Degree())
	assert.Equal(t, 0.0, function.Polynomial{}.Evaluate(5))
	assert.Equal(t, function.Polynomial{0, 2}, p.Derivative())
	assert.Equal(t, function.MaxDerivativeOrder, p.DerivativeCount())
	assert.Panics(t, func() { p.EvaluateDerivative(1, 0) })
}

func TestPolynomialString(t *testing.T) {
	assert.Equal(t, "x^2 - 2", function.Polynomial{-2, 0, 1}.String())
	assert.Equal(t, "-x^3 + 2.5x + 1", function.Polynomial{1, 2.5, 0, -1}.String())
	assert.Equal(t, "0", function.Polynomial{0, 0}.String())
	assert.Equal(t, "x - 5", function.Polynomial{-5, 1}.String())
}

// circleLine is F(x, y) = (x² + y² − 4, x − y).
func circleLine(withJacobian bool) function.System {
	s := function.System{
		Arity: 2,
		F: func(in, out []float64) {
			out[0] = in[0]*in[0] + in[1]*in[1] - 4
			out[1] = in[0] - in[1]
		},
	}
	if withJacobian {
		s.J = func(in []float64, jac matrix.Matrix) error {
			_ = jac.Set(0, 0, 2*in[0])
			_ = jac.Set(0, 1, 2*in[1])
			_ = jac.Set(1, 0, 1)
			return jac.Set(1, 1, -1)
		}
	}

	return s
}

func TestSystemJacobianAnalyticVersusNumeric(t *testing.T) {
	x := []float64{1.5, 0.5}

	exact, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, circleLine(true).EvaluateJacobian(x, exact))

	approx, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, circleLine(false).EvaluateJacobian(x, approx))

	wrapped, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	fd := function.NewFiniteDifference(circleLine(true), 0)
	require.NoError(t, fd.EvaluateJacobian(x, wrapped))
	assert.Equal(t, 2, fd.InputArity())
	assert.Equal(t, 2, fd.OutputArity())

	var i, j int
	for i = 0; i < 2; i++ {
		for j = 0; j < 2; j++ {
			e, _ := exact.At(i, j)
			a, _ := approx.At(i, j)
			w, _ := wrapped.At(i, j)
			assert.InDeltaf(t, e, a, 1e-6, "[%d,%d]", i, j)
			assert.Equal(t, a, w)
		}
	}
}

func TestJacobianShape(t *testing.T) {
	bad, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	require.ErrorIs(t, circleLine(false).EvaluateJacobian([]float64{0, 0}, bad), function.ErrJacobianShape)
	require.ErrorIs(t, circleLine(true).EvaluateJacobian([]float64{0, 0}, bad), function.ErrJacobianShape)
	require.ErrorIs(t, circleLine(false).EvaluateJacobian([]float64{0, 0}, nil), matrix.ErrNilMatrix)
}

func TestFiniteDifferenceNonFinite(t *testing.T) {
	f := function.System{
		Arity: 1,
		F: func(in, out []float64) {
			out[0] = 1 / in[0]
		},
	}
	jac, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	// F(0) = +Inf, so the difference quotient is −Inf.
	require.ErrorIs(t, f.EvaluateJacobian([]float64{0}, jac), matrix.ErrNaNInf)
}

func TestMerit(t *testing.T) {
	out := make([]float64, 2)
	got := function.Merit(circleLine(false), []float64{1, 0}, out)
	assert.Equal(t, []float64{-3, 1}, out)
	assert.Equal(t, 5.0, got)
}
