// Package matrix offers the dense linear algebra the root finders are built on.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors and an
//     optional finite-only numeric policy.
//   - Kernels: Mul, Transpose, MatVec, MatTVec and the Householder QR factorization
//     (A = QTᵀ·R, returning the orthogonal factor already transposed).
//   - LinearSolver implementations used by Newton-type methods:
//     LUSolver (Doolittle with partial pivoting), QRSolver (Householder with a
//     Givens-based rank-one Update for quasi-Newton methods) and SVDSolver
//     (gonum SVD, minimum-norm solution on rank deficiency).
//
// Every solver reports a non-invertible matrix with ErrSingular so callers can
// recover (for example by substituting the identity) without string matching.
//
// See the examples in this package and in roots for usage patterns.
package matrix
