// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels and solvers.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvroot/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type, forcing the non-*Dense conversion path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense filled from vals (row-major) or fails the test.
func MustDense(t *testing.T, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	if len(vals) == 0 {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandDense returns an n×n matrix with entries in [-1, 1) plus n on the diagonal
// (strictly diagonally dominant, hence invertible).
func RandDense(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v := 2*rng.Float64() - 1
			if i == j {
				v += float64(n)
			}
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

// CompareClose asserts |a[i,j]-b[i,j]| <= atol + rtol*|b[i,j]| for all entries.
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	require.Equal(t, a.Rows(), b.Rows())
	require.Equal(t, a.Cols(), b.Cols())
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			x, y := MustAt(t, a, i, j), MustAt(t, b, i, j)
			require.LessOrEqualf(t, math.Abs(x-y), atol+rtol*math.Abs(y),
				"mismatch at [%d,%d]: %g vs %g", i, j, x, y)
		}
	}
}

// sliceClose asserts element-wise closeness of two vectors.
func sliceClose(t *testing.T, a, b []float64, atol float64) {
	t.Helper()
	require.Len(t, a, len(b))
	for i := range a {
		require.InDeltaf(t, b[i], a[i], atol, "index %d", i)
	}
}
