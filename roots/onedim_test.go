package roots_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/roots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bracketedSolver struct {
	name  string
	solve func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error)
}

func bracketedSolvers() []bracketedSolver {
	return []bracketedSolver{
		{"Subdivide", func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error) {
			return roots.Subdivide(f, b, opts...)
		}},
		{"Brent", func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error) {
			return roots.Brent(f, b, opts...)
		}},
		{"BoundedNewtonRaphson", roots.BoundedNewtonRaphson},
	}
}

func TestBracketedSolversSqrt2(t *testing.T) {
	f := function.Polynomial{-2, 0, 1}
	for _, s := range bracketedSolvers() {
		s := s
		t.Run(s.name, func(t *testing.T) {
			t.Parallel()
			x, err := s.solve(f, roots.Bracket{Min: 0, Max: 2}, roots.WithTolerance(1e-13))
			require.NoError(t, err)
			assert.InDelta(t, math.Sqrt2, x, 1e-12)

			x, err = s.solve(f, roots.Bracket{Min: 0, Max: 2})
			require.NoError(t, err)
			assert.InDelta(t, math.Sqrt2, x, 1e-14)
		})
	}
}

func TestBrentCubic(t *testing.T) {
	x, err := roots.Brent(function.Polynomial{0, -1, 0, 1}, roots.Bracket{Min: 0.5, Max: 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x, 1e-14)
}

func TestBracketedSolversStayInBracket(t *testing.T) {
	cases := []struct {
		name string
		f    function.DifferentiableFunc
		b    roots.Bracket
	}{
		{"cos", function.Differentiable{F: math.Cos, Derivatives: []func(float64) float64{
			func(x float64) float64 { return -math.Sin(x) },
		}}, roots.Bracket{Min: 0, Max: 3}},
		{"steep exp", function.Differentiable{
			F:           func(x float64) float64 { return math.Exp(10*x) - 2 },
			Derivatives: []func(float64) float64{func(x float64) float64 { return 10 * math.Exp(10*x) }},
		}, roots.Bracket{Min: -1, Max: 1}},
		{"cubic three roots", function.Polynomial{0, -1, 0, 1}, roots.Bracket{Min: -2, Max: 3}},
		{"flat near root", function.Polynomial{-1e-3, 0, 0, 1}, roots.Bracket{Min: -1, Max: 1}},
		{"reversed sign", function.Polynomial{3, -1}, roots.Bracket{Min: 0, Max: 10}},
	}
	for _, s := range bracketedSolvers() {
		for _, tc := range cases {
			s, tc := s, tc
			t.Run(s.name+"/"+tc.name, func(t *testing.T) {
				x, err := s.solve(tc.f, tc.b, roots.WithTolerance(1e-10))
				require.NoError(t, err)
				assert.True(t, tc.b.Contains(x), "%g outside %v", x, tc.b)
				assert.InDelta(t, 0.0, tc.f.Evaluate(x), 1e-8)
			})
		}
	}
}

func TestBracketedSolversNotBracketed(t *testing.T) {
	f := function.Polynomial{1, 0, 1} // x² + 1
	for _, s := range bracketedSolvers() {
		x, err := s.solve(f, roots.Bracket{Min: -1, Max: 2})
		require.ErrorIs(t, err, roots.ErrNotBracketed, s.name)
		assert.False(t, errors.Is(err, roots.ErrInvalidInput), s.name)
		assert.True(t, math.IsNaN(x), s.name)
	}
}

func TestBracketedSolversEndpointRoot(t *testing.T) {
	f := function.Polynomial{-1, 1} // x − 1
	for _, s := range bracketedSolvers() {
		x, err := s.solve(f, roots.Bracket{Min: 1, Max: 4})
		require.NoError(t, err, s.name)
		assert.Equal(t, 1.0, x, s.name)
	}
}

func TestBracketedSolversIdempotent(t *testing.T) {
	f := function.Polynomial{-2, 0, 1}
	for _, s := range bracketedSolvers() {
		x, err := s.solve(f, roots.Bracket{Min: 0, Max: 2})
		require.NoError(t, err)
		again, err := s.solve(f, roots.Bracket{Min: x - 1e-12, Max: x + 1e-12})
		require.NoError(t, err, s.name)
		assert.InDelta(t, x, again, 1e-12, s.name)
	}
}

func TestSubdivideExhausted(t *testing.T) {
	x, err := roots.Subdivide(function.Polynomial{-2, 0, 1}, roots.Bracket{Min: 0, Max: 2},
		roots.WithMaxIterations(5), roots.WithTolerance(1e-12))
	require.ErrorIs(t, err, roots.ErrRootNotFound)
	assert.InDelta(t, math.Sqrt2, x, 2.0/32)
}

func TestOptionValidation(t *testing.T) {
	f := function.Polynomial{-2, 0, 1}
	b := roots.Bracket{Min: 0, Max: 2}
	for _, opt := range []roots.Option{
		roots.WithTolerance(0),
		roots.WithTolerance(-1),
		roots.WithTolerance(math.NaN()),
		roots.WithTolerance(math.Inf(1)),
		roots.WithFunctionTolerance(0),
	} {
		_, err := roots.Brent(f, b, opt)
		require.ErrorIs(t, err, roots.ErrBadTolerance)
	}
	_, err := roots.Subdivide(f, b, roots.WithMaxIterations(0))
	require.ErrorIs(t, err, roots.ErrBadIterations)
	require.ErrorIs(t, err, roots.ErrInvalidInput)

	_, err = roots.Brent(nil, b)
	require.ErrorIs(t, err, roots.ErrNilFunction)
	_, err = roots.Subdivide(f, roots.Bracket{Min: 2, Max: 0})
	require.ErrorIs(t, err, roots.ErrInvalidBracket)
}

func TestOnIterateHook(t *testing.T) {
	stop := errors.New("stop")
	var seen []int
	_, err := roots.Brent(function.Polynomial{-2, 0, 1}, roots.Bracket{Min: 0, Max: 2},
		roots.WithOnIterate(func(iter int, residual float64) error {
			seen = append(seen, iter)
			if iter == 3 {
				return stop
			}
			return nil
		}))
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestUnboundedNewtonRaphson(t *testing.T) {
	t.Run("simple root", func(t *testing.T) {
		x, err := roots.UnboundedNewtonRaphson(function.Polynomial{-2, 0, 1}, roots.Bracket{Min: 0, Max: 2})
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt2, x, 1e-15)
	})

	t.Run("double root", func(t *testing.T) {
		f := function.Polynomial{0, 0, 1} // x², tangent at 0
		x, err := roots.UnboundedNewtonRaphson(f, roots.Bracket{Min: -1, Max: 2})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, x, 1e-12)

		// The bracketed solvers cannot even start here.
		_, err = roots.Brent(f, roots.Bracket{Min: -1, Max: 2})
		require.ErrorIs(t, err, roots.ErrNotBracketed)
	})

	t.Run("leaves bracket", func(t *testing.T) {
		f := function.Differentiable{
			F:           math.Atan,
			Derivatives: []func(float64) float64{func(x float64) float64 { return 1 / (1 + x*x) }},
		}
		_, err := roots.UnboundedNewtonRaphson(f, roots.Bracket{Min: -10, Max: 20})
		require.ErrorIs(t, err, roots.ErrRootNotFound)

		// Guarded Newton handles the same input.
		x, err := roots.BoundedNewtonRaphson(f, roots.Bracket{Min: -10, Max: 20})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, x, 1e-12)
	})

	t.Run("no derivative", func(t *testing.T) {
		f := function.Differentiable{F: math.Sin}
		_, err := roots.UnboundedNewtonRaphson(f, roots.Bracket{Min: -1, Max: 1})
		require.ErrorIs(t, err, roots.ErrNotDifferentiable)
		_, err = roots.BoundedNewtonRaphson(f, roots.Bracket{Min: -1, Max: 1})
		require.ErrorIs(t, err, roots.ErrNotDifferentiable)
	})
}
