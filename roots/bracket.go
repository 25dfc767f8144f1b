package roots

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/lvroot/function"
)

const (
	// outwardFactor is the growth factor applied to the bracket width per expansion.
	outwardFactor = 1.6

	// outwardTries is the number of expansions BracketOutward attempts.
	outwardTries = 50
)

// Bracket is a closed search interval [Min, Max]. Solvers never modify the
// caller's value.
type Bracket struct {
	Min, Max float64
}

// Width returns Max − Min.
func (b Bracket) Width() float64 { return b.Max - b.Min }

// Mid returns the midpoint, computed without overflow for large ends.
func (b Bracket) Mid() float64 { return b.Min + 0.5*(b.Max-b.Min) }

// Contains reports whether Min ≤ x ≤ Max.
func (b Bracket) Contains(x float64) bool { return x >= b.Min && x <= b.Max }

// String renders the bracket as "[min, max]".
func (b Bracket) String() string { return fmt.Sprintf("[%g, %g]", b.Min, b.Max) }

// Validate checks that both ends are finite and Min ≤ Max.
func (b Bracket) Validate() error {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) || b.Min > b.Max {
		return fmt.Errorf("%v: %w", b, ErrInvalidBracket)
	}

	return nil
}

// BracketOutward widens b geometrically until f changes sign (or touches zero) at its ends.
//
// Implementation:
//   - Each step moves the end with the smaller |f| outward by outwardFactor times the
//     current width, so the search heads toward the side that looks closer to a root.
//   - At most outwardTries expansions are performed.
//
// Returns:
//   - the final bracket and true when f(Min)·f(Max) ≤ 0;
//   - the widest bracket tried and false otherwise (do not use it as a bracket).
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket (non-finite ends or Min >= Max).
func BracketOutward(f function.Func, b Bracket) (Bracket, bool, error) {
	const tag = "BracketOutward"
	if f == nil {
		return b, false, rootsErrorf(tag, ErrNilFunction)
	}
	if err := b.Validate(); err != nil {
		return b, false, rootsErrorf(tag, err)
	}
	if b.Min == b.Max {
		return b, false, rootsErrorf(tag, fmt.Errorf("%v: %w", b, ErrInvalidBracket))
	}

	x1, x2 := b.Min, b.Max
	f1, f2 := f.Evaluate(x1), f.Evaluate(x2)
	for j := 0; j < outwardTries; j++ {
		if f1*f2 <= 0 {
			return Bracket{Min: x1, Max: x2}, true, nil
		}
		if math.Abs(f1) < math.Abs(f2) {
			x1 += outwardFactor * (x1 - x2)
			f1 = f.Evaluate(x1)
		} else {
			x2 += outwardFactor * (x2 - x1)
			f2 = f.Evaluate(x2)
		}
	}

	return Bracket{Min: x1, Max: x2}, f1*f2 <= 0, nil
}

// BracketInward splits b into segments equal pieces and lazily yields, left to right,
// every piece whose ends bracket or touch a sign change of f.
//
// The last piece ends exactly at b.Max. A root that falls exactly on an interior grid
// point touches both neighbouring pieces, so both are yielded.
//
// Errors:
//   - ErrNilFunction, ErrInvalidBracket, ErrBadSegments (segments < 1).
//
// Complexity: segments+1 evaluations of f when fully consumed.
func BracketInward(f function.Func, b Bracket, segments int) (iter.Seq[Bracket], error) {
	const tag = "BracketInward"
	if f == nil {
		return nil, rootsErrorf(tag, ErrNilFunction)
	}
	if err := b.Validate(); err != nil {
		return nil, rootsErrorf(tag, err)
	}
	if segments < 1 {
		return nil, rootsErrorf(tag, fmt.Errorf("segments=%d: %w", segments, ErrBadSegments))
	}

	return func(yield func(Bracket) bool) {
		dx := b.Width() / float64(segments)
		x := b.Min
		fx := f.Evaluate(x)
		var next, fn float64
		for i := 1; i <= segments; i++ {
			next = b.Min + float64(i)*dx
			if i == segments {
				next = b.Max
			}
			fn = f.Evaluate(next)
			if fx*fn <= 0 {
				if !yield(Bracket{Min: x, Max: next}) {
					return
				}
			}
			x, fx = next, fn
		}
	}, nil
}
