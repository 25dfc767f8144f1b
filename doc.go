// Package lvroot finds zeros of scalar and vector functions.
//
// What is in the box?
//
//	Pure Go numerics on top of gonum, organized as three packages:
//		• function/ Func, DifferentiableFunc, VectorFunc and ready-made adapters
//		  (Scalar, Polynomial, System, forward-difference Jacobians)
//		• matrix/   Dense matrices plus LU, QR (with rank-one Update) and SVD solvers
//		• roots/    brackets, bisection, Brent, Newton-Raphson, globally convergent
//		  Newton and Broyden's method
//
// One-dimensional solvers work on a Bracket whose ends straddle a sign change:
//
//	f(x)
//	  │        ╱
//	  │      ╱
//	──┼────●──────── x
//	  │  ╱ root
//	  ╱
//	 Min          Max
//
// Multidimensional solvers start from a guess x0 and damp every Newton step with a
// backtracking line search on ½‖F(x)‖², so they converge from far away or report
// StalledAtMinimum when they land in a local minimum that is not a root.
//
// A command-line front end lives in cmd/rootfind.
//
//	go get github.com/katalvlaran/lvroot/roots
package lvroot
