// SPDX-License-Identifier: MIT

package matrix

import "math"

const opQRSolve = "QRSolver"

// QRSolver keeps the factors of A = QTᵀ·R (see QR) and solves linear systems with them.
// Unlike LUSolver it can be refactored in O(n^2) after a rank-one change of A
// (Update), which is what quasi-Newton root finders rely on.
//
// The zero value is usable; Solve/Update before Initialize return ErrNotInitialized.
type QRSolver struct {
	qt *Dense // orthogonal factor, already transposed
	r  *Dense // upper triangular factor
}

var _ LinearSolver = (*QRSolver)(nil)

// NewQRSolver returns an empty solver ready for Initialize.
func NewQRSolver() *QRSolver { return &QRSolver{} }

// Initialize factors m with Householder reflections.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (validation).
//   - ErrSingular when diag(R) contains an exact zero. The solver is left uninitialized,
//     so callers that want to continue must call InitializeIdentity.
func (s *QRSolver) Initialize(m Matrix) error {
	s.qt, s.r = nil, nil
	if err := ValidateFinite(m); err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	qt, r, err := QR(m)
	if err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	if singularDiagonal(r) {
		return matrixErrorf(opQRSolve, ErrSingular)
	}
	s.qt, s.r = qt, r

	return nil
}

// InitializeIdentity sets QT = R = I_n, i.e. factors the identity matrix.
// Quasi-Newton methods use it as the fallback approximation when the true
// Jacobian is singular.
func (s *QRSolver) InitializeIdentity(n int) error {
	qt, err := NewIdentity(n)
	if err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	r, err := NewIdentity(n)
	if err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	s.qt, s.r = qt, r

	return nil
}

// QT returns a copy of the orthogonal factor (A = QTᵀ·R), or nil before Initialize.
func (s *QRSolver) QT() *Dense {
	if s.qt == nil {
		return nil
	}

	return s.qt.Clone().(*Dense)
}

// R returns a copy of the upper triangular factor, or nil before Initialize.
func (s *QRSolver) R() *Dense {
	if s.r == nil {
		return nil
	}

	return s.r.Clone().(*Dense)
}

// Solve returns X with A·X = b (transpose=false) or Aᵀ·X = b (transpose=true).
//
// Implementation:
//   - A·x = b  ⇔  R·x = QT·b   (back substitution).
//   - Aᵀ·x = b ⇔  Rᵀ·y = b (forward substitution), x = QTᵀ·y.
//
// Errors:
//   - ErrNotInitialized, ErrNilMatrix, ErrDimensionMismatch,
//     ErrSingular if an Update left a zero on diag(R).
func (s *QRSolver) Solve(b Matrix, transpose bool) (Matrix, error) {
	if s.r == nil {
		return nil, matrixErrorf(opQRSolve, ErrNotInitialized)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}
	n := s.r.r
	if b.Rows() != n {
		return nil, matrixErrorf(opQRSolve, ErrDimensionMismatch)
	}
	if singularDiagonal(s.r) {
		return nil, matrixErrorf(opQRSolve, ErrSingular)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}
	out, err := NewDense(n, bd.c)
	if err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}

	r, qt := s.r.data, s.qt.data
	y := make([]float64, n)
	var i, j, c int
	var sum float64
	for c = 0; c < bd.c; c++ {
		if !transpose {
			for i = 0; i < n; i++ {
				sum = ZeroSum
				for j = 0; j < n; j++ {
					sum += qt[i*n+j] * bd.data[j*bd.c+c]
				}
				y[i] = sum
			}
			for i = n - 1; i >= 0; i-- {
				sum = y[i]
				for j = i + 1; j < n; j++ {
					sum -= r[i*n+j] * y[j]
				}
				y[i] = sum / r[i*n+i]
			}
			for i = 0; i < n; i++ {
				out.data[i*out.c+c] = y[i]
			}
			continue
		}

		for i = 0; i < n; i++ {
			sum = bd.data[i*bd.c+c]
			for j = 0; j < i; j++ {
				sum -= r[j*n+i] * y[j]
			}
			y[i] = sum / r[i*n+i]
		}
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for j = 0; j < n; j++ {
				sum += qt[j*n+i] * y[j]
			}
			out.data[i*out.c+c] = sum
		}
	}

	return out, nil
}

// Update refactors after the rank-one change A' = A + u·vᵀ in O(n^2).
//
// Implementation (Givens rotations):
//   - Stage 1: t = QT·u, so A' = QTᵀ·(R + t·vᵀ).
//   - Stage 2: rotate rows (k-1,k), …, (0,1) to zero t below its first entry; R becomes upper Hessenberg.
//   - Stage 3: add t[0]·vᵀ to the first row of R.
//   - Stage 4: rotate rows (0,1), …, (k-1,k) to restore the triangular shape.
//     Every rotation is applied to QT as well, keeping A' = QTᵀ·R exact.
//
// Errors:
//   - ErrNotInitialized, ErrDimensionMismatch (len(u), len(v) != n).
//   - ErrSingular when the updated R has a zero on its diagonal; the factors are still
//     updated so the caller may decide to reinitialize.
func (s *QRSolver) Update(u, v []float64) error {
	if s.r == nil {
		return matrixErrorf(opQRSolve, ErrNotInitialized)
	}
	n := s.r.r
	if err := ValidateVecLen(u, n); err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	if err := ValidateVecLen(v, n); err != nil {
		return matrixErrorf(opQRSolve, err)
	}
	t, err := MatVec(s.qt, u)
	if err != nil {
		return matrixErrorf(opQRSolve, err)
	}

	// Last non-zero component of t.
	k := n - 1
	for k >= 0 && t[k] == 0 {
		k--
	}
	if k < 0 {
		k = 0
	}

	var i, j int
	r := s.r.data
	for i = k - 1; i >= 0; i-- {
		s.rotate(i, t[i], -t[i+1])
		switch {
		case t[i] == 0:
			t[i] = math.Abs(t[i+1])
		case math.Abs(t[i]) > math.Abs(t[i+1]):
			t[i] = math.Abs(t[i]) * math.Sqrt(1+sqr(t[i+1]/t[i]))
		default:
			t[i] = math.Abs(t[i+1]) * math.Sqrt(1+sqr(t[i]/t[i+1]))
		}
	}
	for j = 0; j < n; j++ {
		r[j] += t[0] * v[j]
	}
	for i = 0; i < k; i++ {
		s.rotate(i, r[i*n+i], -r[(i+1)*n+i])
	}

	if singularDiagonal(s.r) {
		return matrixErrorf(opQRSolve, ErrSingular)
	}

	return nil
}

// rotate applies the Jacobi rotation defined by (a, b) to rows i and i+1 of R
// (columns i..n-1) and of QT (all columns).
func (s *QRSolver) rotate(i int, a, b float64) {
	var c, sn, f float64
	switch {
	case a == 0:
		c = 0
		sn = 1
		if b < 0 {
			sn = -1
		}
	case math.Abs(a) > math.Abs(b):
		f = b / a
		c = math.Copysign(1/math.Sqrt(1+f*f), a)
		sn = f * c
	default:
		f = a / b
		sn = math.Copysign(1/math.Sqrt(1+f*f), b)
		c = f * sn
	}

	n := s.r.r
	r, qt := s.r.data, s.qt.data
	var j int
	var y, w float64
	for j = i; j < n; j++ {
		y, w = r[i*n+j], r[(i+1)*n+j]
		r[i*n+j] = c*y - sn*w
		r[(i+1)*n+j] = sn*y + c*w
	}
	for j = 0; j < n; j++ {
		y, w = qt[i*n+j], qt[(i+1)*n+j]
		qt[i*n+j] = c*y - sn*w
		qt[(i+1)*n+j] = sn*y + c*w
	}
}

// singularDiagonal reports whether the square matrix has an exact zero on its diagonal.
func singularDiagonal(m *Dense) bool {
	for i := 0; i < m.r; i++ {
		if m.data[i*m.c+i] == ZeroPivot {
			return true
		}
	}

	return false
}

func sqr(x float64) float64 { return x * x }
