package roots

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon is the float64 machine epsilon (2^-52).
var epsilon = math.Nextafter(1, 2) - 1

const (
	// initialFunctionTolerance: a start with ‖F‖∞ below it is returned untouched.
	initialFunctionTolerance = 1e-15

	// gradientTolerance is the relative gradient threshold of the stall test.
	gradientTolerance = 1e-6

	// maxStepScale bounds a line-search step to maxStepScale·max(‖x‖₂, n).
	maxStepScale = 100.0
)

func normInf(v []float64) float64 { return floats.Norm(v, math.Inf(1)) }

// defaultTolerance is half the bracket magnitude times ε, floored at the
// smallest positive float so that a bracket at the origin still terminates.
func defaultTolerance(b Bracket) float64 {
	tol := 0.5 * (math.Abs(b.Min) + math.Abs(b.Max)) * epsilon
	if tol == 0 {
		tol = math.SmallestNonzeroFloat64
	}

	return tol
}

// ulp returns the spacing between |x| and the next larger float64.
func ulp(x float64) float64 {
	x = math.Abs(x)

	return math.Nextafter(x, math.Inf(1)) - x
}

// sameSign reports whether a and b are both strictly positive or both strictly negative.
func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// maxStep returns the line-search step cap for the start point x.
func maxStep(x []float64) float64 {
	return maxStepScale * math.Max(floats.Norm(x, 2), float64(len(x)))
}

// relativeGradient returns max_i |g_i|·max(|x_i|,1) / max(f, n/2), the scale-free
// slope of the merit function f = ½‖F‖² at x.
func relativeGradient(g, x []float64, f float64) float64 {
	den := math.Max(f, 0.5*float64(len(x)))
	var test float64
	for i := range g {
		test = math.Max(test, math.Abs(g[i])*math.Max(math.Abs(x[i]), 1)/den)
	}

	return test
}

// relativeChange returns max_i |x_i − xold_i| / max(|x_i|, 1).
func relativeChange(x, xold []float64) float64 {
	var test float64
	for i := range x {
		test = math.Max(test, math.Abs(x[i]-xold[i])/math.Max(math.Abs(x[i]), 1))
	}

	return test
}
