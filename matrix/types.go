// SPDX-License-Identifier: MIT

// Package matrix: public interfaces.
// This file contains ONLY the interfaces shared by kernels and solvers:
// the Matrix surface and the LinearSolver collaborator used by the root finders.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// LinearSolver factors a square matrix once and solves A·X = B (or Aᵀ·X = B)
// for any number of right-hand sides afterwards.
//
// Contract:
//   - Initialize copies what it needs; later mutation of m does not affect the solver.
//   - Initialize returns an error wrapping ErrSingular when m cannot be factored
//     (LU/QR: not invertible; SVD: the zero matrix).
//   - Solve never mutates b; it returns a fresh n×k matrix.
//   - Solve before a successful Initialize returns ErrNotInitialized.
//
// Implementations: LUSolver (partial pivoting), QRSolver (Householder, rank-one Update),
// SVDSolver (gonum SVD, pseudo-inverse on rank deficiency).
type LinearSolver interface {
	// Initialize factors the square matrix m.
	Initialize(m Matrix) error

	// Solve returns X with A·X = b, or Aᵀ·X = b when transpose is true.
	Solve(b Matrix, transpose bool) (Matrix, error)
}
