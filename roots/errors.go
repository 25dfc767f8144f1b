package roots

import (
	"errors"
	"fmt"
)

// Recoverable outcomes: the input was well-formed but no root was located.
// Branch on them with errors.Is.
var (
	// ErrNotBracketed indicates f(Min) and f(Max) have the same (non-zero) sign.
	ErrNotBracketed = errors.New("roots: root not bracketed")

	// ErrRootNotFound indicates the iteration budget ran out, or the unbounded
	// Newton iteration left its bracket.
	ErrRootNotFound = errors.New("roots: root not found")
)

// ErrInvalidInput is the parent of every precondition violation below.
// These are programming errors: retrying with the same arguments never helps.
var ErrInvalidInput = errors.New("roots: invalid input")

var (
	// ErrNilFunction is returned when the function argument is nil.
	ErrNilFunction = fmt.Errorf("%w: nil function", ErrInvalidInput)

	// ErrInvalidBracket is returned for non-finite ends or Min > Max
	// (Min == Max as well, where the operation needs a non-empty interval).
	ErrInvalidBracket = fmt.Errorf("%w: bracket must have finite ends with Min <= Max", ErrInvalidInput)

	// ErrBadTolerance is returned for a tolerance that is not a positive finite number.
	ErrBadTolerance = fmt.Errorf("%w: tolerance must be positive and finite", ErrInvalidInput)

	// ErrBadIterations is returned for an iteration budget below 1.
	ErrBadIterations = fmt.Errorf("%w: iteration budget must be >= 1", ErrInvalidInput)

	// ErrBadSegments is returned by BracketInward for segments < 1.
	ErrBadSegments = fmt.Errorf("%w: segments must be >= 1", ErrInvalidInput)

	// ErrNotDifferentiable is returned when a Newton method gets a function without a first derivative.
	ErrNotDifferentiable = fmt.Errorf("%w: function has no first derivative", ErrInvalidInput)

	// ErrArityMismatch is returned for non-square vector functions or a start vector of the wrong length.
	ErrArityMismatch = fmt.Errorf("%w: arity mismatch", ErrInvalidInput)

	// ErrNotFinite is returned by the multidimensional solvers when F(x0) has a NaN or
	// infinite component.
	ErrNotFinite = fmt.Errorf("%w: function value is not finite", ErrInvalidInput)

	// ErrNotDescent is returned by the line search when gradient·step >= 0.
	ErrNotDescent = fmt.Errorf("%w: step is not a descent direction", ErrInvalidInput)
)

// rootsErrorf wraps err with the solver tag, preserving it for errors.Is.
func rootsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
