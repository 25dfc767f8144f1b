// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const opSVD = "SVD"

// epsilon is the float64 machine epsilon (2^-52).
var epsilon = math.Nextafter(1, 2) - 1

// SVDSolver solves with the singular value decomposition A = U·Σ·Vᵀ computed by gonum.
// Singular values at or below rcond·σ_max are treated as zero, so a rank-deficient
// (but non-zero) matrix yields the minimum-norm least-squares solution instead of
// failing. Only the zero matrix is reported as ErrSingular.
type SVDSolver struct {
	u, v  mat.Dense
	sigma []float64
	rcond float64
	n     int
	ready bool
}

var _ LinearSolver = (*SVDSolver)(nil)

// NewSVDSolver returns an empty solver. rcond ≤ 0 selects the default n·ε cutoff.
func NewSVDSolver(rcond float64) *SVDSolver { return &SVDSolver{rcond: rcond} }

// Initialize factors m.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular when m is the zero matrix or the decomposition fails to converge.
func (s *SVDSolver) Initialize(m Matrix) error {
	s.ready = false
	if err := ValidateSquareNonNil(m); err != nil {
		return matrixErrorf(opSVD, err)
	}
	if err := ValidateFinite(m); err != nil {
		return matrixErrorf(opSVD, err)
	}
	d, err := toDense(m)
	if err != nil {
		return matrixErrorf(opSVD, err)
	}
	n := d.r

	a := mat.NewDense(n, n, append([]float64(nil), d.data...))
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return matrixErrorf(opSVD, ErrSingular)
	}
	s.sigma = svd.Values(nil)
	if s.sigma[0] == ZeroPivot {
		return matrixErrorf(opSVD, ErrSingular)
	}
	s.u.Reset()
	s.v.Reset()
	svd.UTo(&s.u)
	svd.VTo(&s.v)
	s.n = n
	s.ready = true

	return nil
}

// Rank returns the number of singular values above the cutoff, or 0 before Initialize.
func (s *SVDSolver) Rank() int {
	if !s.ready {
		return 0
	}
	cut := s.cutoff()
	r := 0
	for _, sv := range s.sigma {
		if sv > cut {
			r++
		}
	}

	return r
}

func (s *SVDSolver) cutoff() float64 {
	rc := s.rcond
	if rc <= 0 {
		rc = float64(s.n) * epsilon
	}

	return rc * s.sigma[0]
}

// Solve returns the minimum-norm X with A·X = b (transpose=false) or Aᵀ·X = b (transpose=true).
//
// Implementation:
//   - A·x = b:  x = V·Σ⁺·Uᵀ·b.
//   - Aᵀ·x = b: x = U·Σ⁺·Vᵀ·b (Aᵀ = V·Σ·Uᵀ).
//
// Errors:
//   - ErrNotInitialized, ErrNilMatrix, ErrDimensionMismatch.
func (s *SVDSolver) Solve(b Matrix, transpose bool) (Matrix, error) {
	if !s.ready {
		return nil, matrixErrorf(opSVD, ErrNotInitialized)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	n := s.n
	if b.Rows() != n {
		return nil, matrixErrorf(opSVD, ErrDimensionMismatch)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	out, err := NewDense(n, bd.c)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}

	left, right := &s.u, &s.v
	if transpose {
		left, right = right, left
	}
	cut := s.cutoff()

	var i, k, c int
	var coef float64
	for c = 0; c < bd.c; c++ {
		for k = 0; k < n; k++ {
			if s.sigma[k] <= cut {
				break // values are sorted descending
			}
			coef = ZeroSum
			for i = 0; i < n; i++ {
				coef += left.At(i, k) * bd.data[i*bd.c+c]
			}
			coef /= s.sigma[k]
			for i = 0; i < n; i++ {
				out.data[i*out.c+c] += coef * right.At(i, k)
			}
		}
	}

	return out, nil
}
