package function

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDerivativeOrder is the DerivativeCount reported by Polynomial: every
// derivative of a polynomial exists (those beyond its degree are zero).
const MaxDerivativeOrder = math.MaxInt32

// Polynomial holds coefficients in ascending order: p[0] + p[1]·x + p[2]·x² + …
type Polynomial []float64

var _ DifferentiableFunc = Polynomial(nil)

// Evaluate returns p(x) by Horner's rule. The empty polynomial is 0.
func (p Polynomial) Evaluate(x float64) float64 {
	var acc float64
	for k := len(p) - 1; k >= 0; k-- {
		acc = acc*x + p[k]
	}

	return acc
}

// Degree returns the index of the highest non-zero coefficient, or 0 for the zero polynomial.
func (p Polynomial) Degree() int {
	for k := len(p) - 1; k > 0; k-- {
		if p[k] != 0 {
			return k
		}
	}

	return 0
}

// DerivativeCount returns MaxDerivativeOrder.
func (p Polynomial) DerivativeCount() int { return MaxDerivativeOrder }

// EvaluateDerivative returns p⁽ᵒʳᵈᵉʳ⁾(x) without building the derivative polynomial.
// Panics when order < 1.
func (p Polynomial) EvaluateDerivative(x float64, order int) float64 {
	if order < 1 {
		panic(fmt.Sprintf("function: derivative order %d out of range [1,%d]", order, MaxDerivativeOrder))
	}
	if order >= len(p) {
		return 0
	}

	// Σ_{k≥order} p[k]·k!/(k-order)!·x^(k-order), Horner from the top.
	var acc float64
	for k := len(p) - 1; k >= order; k-- {
		acc = acc*x + p[k]*fallingFactorial(k, order)
	}

	return acc
}

// Derivative returns p' as a new Polynomial.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	d := make(Polynomial, len(p)-1)
	for k := 1; k < len(p); k++ {
		d[k-1] = float64(k) * p[k]
	}

	return d
}

// String renders p in descending powers, e.g. "x^2 - 2".
func (p Polynomial) String() string {
	var b strings.Builder
	for k := p.Degree(); k >= 0; k-- {
		c := p.coeff(k)
		if c == 0 && !(k == 0 && b.Len() == 0) {
			continue
		}
		switch {
		case b.Len() == 0 && c < 0:
			b.WriteString("-")
		case b.Len() > 0 && c < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		a := math.Abs(c)
		if a != 1 || k == 0 {
			b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		}
		switch {
		case k == 1:
			b.WriteString("x")
		case k > 1:
			b.WriteString("x^" + strconv.Itoa(k))
		}
	}

	return b.String()
}

func (p Polynomial) coeff(k int) float64 {
	if k < len(p) {
		return p[k]
	}

	return 0
}

// fallingFactorial returns k·(k-1)·…·(k-order+1).
func fallingFactorial(k, order int) float64 {
	f := 1.0
	for i := 0; i < order; i++ {
		f *= float64(k - i)
	}

	return f
}
