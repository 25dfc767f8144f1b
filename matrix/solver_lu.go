// SPDX-License-Identifier: MIT

package matrix

import "math"

const opLU = "LU"

// LUSolver factors a square matrix as P·A = L·U (Doolittle, partial pivoting)
// and solves A·X = B or Aᵀ·X = B by forward/backward substitution.
//
// Storage:
//   - lu holds L strictly below the diagonal (unit diagonal implied) and U on/above it.
//   - perm[i] is the input row that ended up in row i after pivoting.
//
// The zero value is usable; Solve before Initialize returns ErrNotInitialized.
// An LUSolver is not safe for concurrent Initialize/Solve.
type LUSolver struct {
	lu   *Dense
	perm []int
}

var _ LinearSolver = (*LUSolver)(nil)

// NewLUSolver returns an empty solver ready for Initialize.
func NewLUSolver() *LUSolver { return &LUSolver{} }

// Initialize factors m.
//
// Implementation:
//   - Stage 1: validate (non-nil, square, finite) and copy m.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]| (i ≥ k), swap it up,
//     then eliminate below the pivot storing the multipliers in place.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular when an entire pivot column is exactly zero. The solver is left uninitialized.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func (s *LUSolver) Initialize(m Matrix) error {
	s.lu, s.perm = nil, nil
	if err := ValidateSquareNonNil(m); err != nil {
		return matrixErrorf(opLU, err)
	}
	if err := ValidateFinite(m); err != nil {
		return matrixErrorf(opLU, err)
	}
	src, err := toDense(m)
	if err != nil {
		return matrixErrorf(opLU, err)
	}
	a := src.Clone().(*Dense)
	n := a.r

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	var big, v, pivot, f float64
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below the diagonal.
		p, big = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+k]); v > big {
				p, big = i, v
			}
		}
		if big == ZeroPivot {
			return matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j = 0; j < n; j++ {
				a.data[k*n+j], a.data[p*n+j] = a.data[p*n+j], a.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		pivot = a.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / pivot
			a.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}
	s.lu, s.perm = a, perm

	return nil
}

// Solve returns X with A·X = b (transpose=false) or Aᵀ·X = b (transpose=true).
//
// Errors:
//   - ErrNotInitialized, ErrNilMatrix, ErrDimensionMismatch (b.Rows() != n).
//
// Complexity:
//   - Time O(n^2 * k) for k right-hand sides.
func (s *LUSolver) Solve(b Matrix, transpose bool) (Matrix, error) {
	if s.lu == nil {
		return nil, matrixErrorf(opLU, ErrNotInitialized)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := s.lu.r
	if b.Rows() != n {
		return nil, matrixErrorf(opLU, ErrDimensionMismatch)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	out, err := NewDense(n, bd.c)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	lu := s.lu.data
	col := make([]float64, n)
	var i, j, c int
	var sum float64
	for c = 0; c < bd.c; c++ {
		if !transpose {
			// L·U·x = P·b
			for i = 0; i < n; i++ {
				col[i] = bd.data[s.perm[i]*bd.c+c]
			}
			for i = 0; i < n; i++ {
				sum = col[i]
				for j = 0; j < i; j++ {
					sum -= lu[i*n+j] * col[j]
				}
				col[i] = sum
			}
			for i = n - 1; i >= 0; i-- {
				sum = col[i]
				for j = i + 1; j < n; j++ {
					sum -= lu[i*n+j] * col[j]
				}
				col[i] = sum / lu[i*n+i]
			}
			for i = 0; i < n; i++ {
				out.data[i*out.c+c] = col[i]
			}
			continue
		}

		// Uᵀ·Lᵀ·(P·x) = b
		for i = 0; i < n; i++ {
			col[i] = bd.data[i*bd.c+c]
		}
		for i = 0; i < n; i++ {
			sum = col[i]
			for j = 0; j < i; j++ {
				sum -= lu[j*n+i] * col[j]
			}
			col[i] = sum / lu[i*n+i]
		}
		for i = n - 1; i >= 0; i-- {
			sum = col[i]
			for j = i + 1; j < n; j++ {
				sum -= lu[j*n+i] * col[j]
			}
			col[i] = sum
		}
		for i = 0; i < n; i++ {
			out.data[s.perm[i]*out.c+c] = col[i]
		}
	}

	return out, nil
}
