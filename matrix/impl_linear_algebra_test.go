// Package matrix_test contains unit tests for the linear algebra kernels.
package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/lvroot/matrix"
	"github.com/stretchr/testify/require"
)

// TestMul checks a hand-computed product and the inner-dimension guard.
func TestMul(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustDense(t, 3, 2, 7, 8, 9, 10, 11, 12)

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, got, MustDense(t, 2, 2, 58, 64, 139, 154), 0, 0)

	// Same result through the interface path.
	got, err = matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	CompareClose(t, got, MustDense(t, 2, 2, 58, 64, 139, 154), 0, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestTranspose swaps shape and entries.
func TestTranspose(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, 6.0, MustAt(t, tr, 2, 1))

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMatVecAndMatTVec compare both products against explicit formulas.
func TestMatVecAndMatTVec(t *testing.T) {
	a := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	z, err := matrix.MatTVec(a, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-3, -3, -3}, z)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatTVec(a, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestQRReconstruct verifies QT is orthogonal, R upper triangular and QTᵀ·R = A.
func TestQRReconstruct(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := RandDense(t, n, int64(n))
			qt, r, err := matrix.QR(a)
			require.NoError(t, err)

			var i, j int
			for i = 1; i < n; i++ {
				for j = 0; j < i; j++ {
					require.Equal(t, 0.0, MustAt(t, r, i, j))
				}
			}

			q, err := matrix.Transpose(qt)
			require.NoError(t, err)
			qtq, err := matrix.Mul(qt, q)
			require.NoError(t, err)
			id, err := matrix.NewIdentity(n)
			require.NoError(t, err)
			CompareClose(t, qtq, id, 0, 1e-12)

			back, err := matrix.Mul(q, r)
			require.NoError(t, err)
			CompareClose(t, back, a, 1e-12, 1e-12)
		})
	}
}

// TestQRZeroColumn leaves a zero on the diagonal instead of failing.
func TestQRZeroColumn(t *testing.T) {
	a := MustDense(t, 2, 2, 0, 1, 0, 2)
	qt, r, err := matrix.QR(a)
	require.NoError(t, err)
	require.Equal(t, 0.0, MustAt(t, r, 0, 0))
	require.InDelta(t, 2.0, math.Abs(MustAt(t, r, 1, 1)), 1e-15)

	q, err := matrix.Transpose(qt)
	require.NoError(t, err)
	back, err := matrix.Mul(q, r)
	require.NoError(t, err)
	CompareClose(t, back, a, 0, 1e-15)
}

// TestNewIdentity checks the diagonal and the dimension guard.
func TestNewIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.Equal(t, 1.0, MustAt(t, id, 2, 2))
	require.Equal(t, 0.0, MustAt(t, id, 0, 2))

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
