// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer the column/row accessors that Jacobian-based solvers need (Row, Col, SetCol).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in hot algebra (see impl_linear_algebra.go): operate on the flat data slice directly.
//   - DefaultValidateNaNInf is on; a Jacobian callback writing NaN through Set fails loudly.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Row/Col: O(c)/O(r).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// DefaultValidateNaNInf is the numeric policy applied to freshly built matrices:
// when true, Set rejects NaN and ±Inf with ErrNaNInf.
const DefaultValidateNaNInf = true

// ---------- error context tags ----------

const (
	ctxAt     = "At"      // method tag used in error wrappers
	ctxSet    = "Set"     // method tag used in error wrappers
	ctxRow    = "Row"     // method tag for row copies
	ctxCol    = "Col"     // method tag for column copies
	ctxSetCol = "SetCol"  // method tag for column writes
	ctxFrom   = "NewFrom" // ctor tag for NewDenseFrom
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w". Preserves the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (> 0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and set numeric policy from defaults.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols), // make() zero-fills deterministically
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom builds an r×c matrix from a row-major slice (copied).
//
// Errors:
//   - ErrInvalidDimensions when rows or cols ≤ 0.
//   - ErrDimensionMismatch when len(values) != rows*cols.
//   - ErrNaNInf when the policy is on and a value is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, values []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, fmt.Errorf("Dense.%s(%d,%d): %w", ctxFrom, rows, cols, ErrDimensionMismatch)
	}
	for k, v := range values {
		if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return nil, denseErrorf(ctxFrom, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, values)

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf bounds-checks (row,col) and returns the row-major offset or ErrOutOfRange.
// The sentinel is returned bare; public methods wrap it with coordinates.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range indices. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values when the policy is on.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a copy of column j.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// SetCol overwrites column j with v (len(v) must equal Rows()).
// Elements are validated before the first write, so a failed call leaves m unchanged.
func (m *Dense) SetCol(j int, v []float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxSetCol, 0, j, ErrOutOfRange)
	}
	if len(v) != m.r {
		return denseErrorf(ctxSetCol, len(v), j, ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for i, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return denseErrorf(ctxSetCol, i, j, ErrNaNInf)
			}
		}
	}
	for i, x := range v {
		m.data[i*m.c+j] = x
	}

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf, // preserve guard policy
	}
}

// String renders the matrix row by row for diagnostics (not for hot paths).
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// toDense returns m itself when it is a *Dense, or a row-major copy otherwise.
// Kernels and solvers use it to reach the flat fast-path exactly once per call.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}
