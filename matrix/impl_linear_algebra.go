// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels consumed by the root finders:
// matrix multiplication, transpose, matrix-vector products (plain and
// transposed) and the Householder QR factorization. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel converts its operands to *Dense once (toDense) and then works on
//     the flat row-major slice; inputs are never mutated.
//   - Errors are wrapped with the operation tag via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/QR routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opMatTVec   = "MatTVec"
	opQR        = "QR"
	opIdentity  = "Identity"
	opSolveVec  = "SolveVec"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Determinism:
//   - Fixed i→k→j loop order (cache-friendly on row-major storage).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(ad.r, bd.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	var aik float64
	for i = 0; i < ad.r; i++ {
		for k = 0; k < ad.c; k++ {
			aik = ad.data[i*ad.c+k]
			if aik == 0 {
				continue // sparse-ish rows are common in Jacobians
			}
			for j = 0; j < bd.c; j++ {
				res.data[i*res.c+j] += aik * bd.data[k*bd.c+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*res.c+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// MatTVec computes y = mᵀ * x without materializing the transpose.
// The multidimensional root finders use it for the merit gradient Jᵀ·F.
//
// Contract: m non-nil; len(x) == m.Rows().
// Complexity: Time O(r*c), Space O(c) for y.
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}

	y := make([]float64, d.c)
	var i, j, base int
	var xi float64
	for i = 0; i < d.r; i++ {
		xi = x[i]
		if xi == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += d.data[base+j] * xi
		}
	}

	return y, nil
}

// QR computes a Householder-based factorization such that A = Qᵀ * R.
// Implementation:
//   - Stage 1: Validate m (not nil, square); clone A; init QT to identity.
//   - Stage 2: For k=0..n-1, build a column reflector and apply it to A (forming R) and to QT.
//
// Returns:
//   - *Dense: QT, the accumulated reflectors (orthogonal; note that A = QTᵀ * R).
//   - *Dense: R, upper triangular after reflections.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare. Singularity is NOT reported here: a zero column
//     leaves a zero on diag(R); QRSolver inspects the diagonal.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func QR(m Matrix) (*Dense, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	n := src.r

	R := src.Clone().(*Dense)
	QT, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	v := make([]float64, n) // Householder vector
	var (
		i, j, k    int
		norm, beta float64
		alpha, tau float64
		sum, akk   float64
	)
	for k = 0; k < n; k++ {
		// Norm of the sub-column R[k:n][k].
		norm = NormZero
		for i = k; i < n; i++ {
			norm += R.data[i*n+k] * R.data[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == NormZero {
			continue // zero column: diag(R)[k] stays 0
		}

		// alpha = -sign(R[k,k]) * norm avoids cancellation in v[k].
		akk = R.data[k*n+k]
		alpha = -math.Copysign(norm, akk)

		for i = 0; i < k; i++ {
			v[i] = 0
		}
		for i = k; i < n; i++ {
			v[i] = R.data[i*n+k]
		}
		v[k] -= alpha

		beta = NormZero
		for i = k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == NormZero {
			continue
		}
		tau = 2.0 / beta

		// Apply H = I - tau*v*vᵀ to R (columns k..n-1).
		for j = k; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * R.data[i*n+j]
			}
			for i = k; i < n; i++ {
				R.data[i*n+j] -= tau * v[i] * sum
			}
		}
		// Clean the annihilated entries so R is exactly upper triangular.
		R.data[k*n+k] = alpha
		for i = k + 1; i < n; i++ {
			R.data[i*n+k] = 0
		}

		// Accumulate H into QT.
		for j = 0; j < n; j++ {
			sum = ZeroSum
			for i = k; i < n; i++ {
				sum += v[i] * QT.data[i*n+j]
			}
			for i = k; i < n; i++ {
				QT.data[i*n+j] -= tau * v[i] * sum
			}
		}
	}

	return QT, R, nil
}
