// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity to seed quasi-Newton factorizations.
//   - Use SolveVec when the right-hand side is a single vector (the usual Newton step).

package matrix

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ColumnOf wraps x as an n×1 *Dense (copied), the shape Solve expects for a single right-hand side.
func ColumnOf(x []float64) (*Dense, error) {
	return NewDenseFrom(len(x), 1, x)
}

// SolveVec solves A·x = b (or Aᵀ·x = b) for a single vector using an initialized solver.
// It is a composition of ColumnOf → LinearSolver.Solve → column read-back.
//
// Errors:
//   - anything returned by ColumnOf or s.Solve, wrapped with the "SolveVec" tag.
func SolveVec(s LinearSolver, b []float64, transpose bool) ([]float64, error) {
	rhs, err := ColumnOf(b)
	if err != nil {
		return nil, matrixErrorf(opSolveVec, err)
	}
	sol, err := s.Solve(rhs, transpose)
	if err != nil {
		return nil, matrixErrorf(opSolveVec, err)
	}
	d, err := toDense(sol)
	if err != nil {
		return nil, matrixErrorf(opSolveVec, err)
	}

	return d.Col(0)
}
