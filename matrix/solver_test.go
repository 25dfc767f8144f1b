// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the LinearSolver implementations.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvroot/matrix"
	"github.com/stretchr/testify/require"
)

type solverCase struct {
	name string
	make func() matrix.LinearSolver
}

func allSolvers() []solverCase {
	return []solverCase{
		{"LU", func() matrix.LinearSolver { return matrix.NewLUSolver() }},
		{"QR", func() matrix.LinearSolver { return matrix.NewQRSolver() }},
		{"SVD", func() matrix.LinearSolver { return matrix.NewSVDSolver(0) }},
	}
}

// TestSolversSolve checks A·x = b and Aᵀ·x = b residuals for every solver.
func TestSolversSolve(t *testing.T) {
	for _, sc := range allSolvers() {
		sc := sc
		for _, n := range []int{1, 3, 7} {
			n := n
			t.Run(fmt.Sprintf("%s/n=%d", sc.name, n), func(t *testing.T) {
				t.Parallel()
				a := RandDense(t, n, 42+int64(n))
				s := sc.make()
				require.NoError(t, s.Initialize(a))

				b := make([]float64, n)
				for i := range b {
					b[i] = float64(i + 1)
				}

				x, err := matrix.SolveVec(s, b, false)
				require.NoError(t, err)
				ax, err := matrix.MatVec(a, x)
				require.NoError(t, err)
				sliceClose(t, ax, b, 1e-10)

				xt, err := matrix.SolveVec(s, b, true)
				require.NoError(t, err)
				atx, err := matrix.MatTVec(a, xt)
				require.NoError(t, err)
				sliceClose(t, atx, b, 1e-10)
			})
		}
	}
}

// TestSolversMultipleRHS solves for two columns at once through the interface path.
func TestSolversMultipleRHS(t *testing.T) {
	a := MustDense(t, 2, 2, 4, 1, 2, 3)
	b := MustDense(t, 2, 2, 1, 0, 0, 1)
	for _, sc := range allSolvers() {
		s := sc.make()
		require.NoError(t, s.Initialize(hide{a}), sc.name)
		inv, err := s.Solve(hide{b}, false)
		require.NoError(t, err, sc.name)
		prod, err := matrix.Mul(a, inv)
		require.NoError(t, err)
		CompareClose(t, prod, b, 0, 1e-12)
	}
}

// TestSolversErrors covers the shared error contract.
func TestSolversErrors(t *testing.T) {
	for _, sc := range allSolvers() {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			s := sc.make()
			_, err := s.Solve(MustDense(t, 2, 1), false)
			require.ErrorIs(t, err, matrix.ErrNotInitialized)

			require.ErrorIs(t, s.Initialize(nil), matrix.ErrNilMatrix)
			require.ErrorIs(t, s.Initialize(MustDense(t, 2, 3)), matrix.ErrNonSquare)

			require.NoError(t, s.Initialize(MustDense(t, 2, 2, 1, 0, 0, 1)))
			_, err = s.Solve(MustDense(t, 3, 1), false)
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			_, err = s.Solve(nil, false)
			require.ErrorIs(t, err, matrix.ErrNilMatrix)

			require.ErrorIs(t, s.Initialize(MustDense(t, 2, 2)), matrix.ErrSingular)
			_, err = s.Solve(MustDense(t, 2, 1), false)
			require.ErrorIs(t, err, matrix.ErrNotInitialized)
		})
	}
}

// TestSingularRankDeficient: LU and QR refuse a rank-one matrix, SVD returns the
// minimum-norm solution.
func TestSingularRankDeficient(t *testing.T) {
	a := MustDense(t, 2, 2, 1, 1, 1, 1)

	require.ErrorIs(t, matrix.NewLUSolver().Initialize(a), matrix.ErrSingular)
	require.ErrorIs(t, matrix.NewQRSolver().Initialize(a), matrix.ErrSingular)

	svd := matrix.NewSVDSolver(0)
	require.NoError(t, svd.Initialize(a))
	require.Equal(t, 1, svd.Rank())
	x, err := matrix.SolveVec(svd, []float64{2, 2}, false)
	require.NoError(t, err)
	sliceClose(t, x, []float64{1, 1}, 1e-12)
}

// TestLUPivoting needs a row swap on the first column.
func TestLUPivoting(t *testing.T) {
	a := MustDense(t, 3, 3,
		0, 2, 1,
		1, 1, 1,
		2, 0, 3)
	s := matrix.NewLUSolver()
	require.NoError(t, s.Initialize(a))
	x, err := matrix.SolveVec(s, []float64{3, 3, 5}, false)
	require.NoError(t, err)
	sliceClose(t, x, []float64{1, 1, 1}, 1e-14)
}

// TestQRSolverUpdate checks that after Update(u, v) the factors reproduce A + u·vᵀ
// and solving with them matches a fresh factorization.
func TestQRSolverUpdate(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := RandDense(t, n, 7*int64(n))
			u := make([]float64, n)
			v := make([]float64, n)
			for i := 0; i < n; i++ {
				u[i] = 0.3 * float64(i+1)
				v[i] = 0.1 * float64(n-i)
			}

			s := matrix.NewQRSolver()
			require.NoError(t, s.Initialize(a))
			require.NoError(t, s.Update(u, v))

			want := a.Clone()
			var i, j int
			for i = 0; i < n; i++ {
				for j = 0; j < n; j++ {
					require.NoError(t, want.Set(i, j, MustAt(t, a, i, j)+u[i]*v[j]))
				}
			}

			r := s.R()
			for i = 1; i < n; i++ {
				for j = 0; j < i; j++ {
					require.InDelta(t, 0.0, MustAt(t, r, i, j), 1e-12)
				}
			}
			q, err := matrix.Transpose(s.QT())
			require.NoError(t, err)
			back, err := matrix.Mul(q, r)
			require.NoError(t, err)
			CompareClose(t, back, want, 1e-12, 1e-12)

			fresh := matrix.NewLUSolver()
			require.NoError(t, fresh.Initialize(want))
			b := make([]float64, n)
			b[0] = 1
			x1, err := matrix.SolveVec(s, b, false)
			require.NoError(t, err)
			x2, err := matrix.SolveVec(fresh, b, false)
			require.NoError(t, err)
			sliceClose(t, x1, x2, 1e-10)
		})
	}
}

// TestQRSolverUpdateFromIdentity mirrors the quasi-Newton fallback path.
func TestQRSolverUpdateFromIdentity(t *testing.T) {
	s := matrix.NewQRSolver()
	require.NoError(t, s.InitializeIdentity(3))
	require.NoError(t, s.Update([]float64{0, 0, 1}, []float64{1, 0, 0}))

	q, err := matrix.Transpose(s.QT())
	require.NoError(t, err)
	back, err := matrix.Mul(q, s.R())
	require.NoError(t, err)
	CompareClose(t, back, MustDense(t, 3, 3,
		1, 0, 0,
		0, 1, 0,
		1, 0, 1), 0, 1e-14)
}

// TestQRSolverUpdateErrors covers the guards and a rank-dropping update.
func TestQRSolverUpdateErrors(t *testing.T) {
	s := matrix.NewQRSolver()
	require.ErrorIs(t, s.Update([]float64{1}, []float64{1}), matrix.ErrNotInitialized)
	require.Nil(t, s.QT())
	require.Nil(t, s.R())

	require.NoError(t, s.InitializeIdentity(2))
	require.ErrorIs(t, s.Update([]float64{1}, []float64{1, 2}), matrix.ErrDimensionMismatch)

	// I + (-e0)·e0ᵀ zeroes the first column.
	require.ErrorIs(t, s.Update([]float64{-1, 0}, []float64{1, 0}), matrix.ErrSingular)
	_, err := matrix.SolveVec(s, []float64{1, 1}, false)
	require.ErrorIs(t, err, matrix.ErrSingular)

	require.ErrorIs(t, s.InitializeIdentity(0), matrix.ErrInvalidDimensions)
}
