// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels and solvers MUST return these sentinels (possibly wrapped)
// and tests MUST check them via errors.Is. No kernel panics on user-triggered
// error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Context is added with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary; callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/index/NaN -> dimension mismatch -> numeric (singular).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a right-hand side of the wrong height.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when a linear solver cannot factor its matrix
	// because it is not invertible (zero pivot, zero diagonal in R, rank zero).
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNotInitialized is returned by a LinearSolver used before Initialize.
	ErrNotInitialized = errors.New("matrix: solver not initialized")
)
