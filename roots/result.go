package roots

// Status classifies how a multidimensional solve ended.
type Status int

const (
	// Converged means ‖F(X)‖∞ fell below the function tolerance, or X stopped
	// changing at machine precision. A line search stall with a large relative
	// gradient is also Converged, in which case Residual can be large.
	Converged Status = iota

	// StalledAtMinimum means the line search could not decrease ½‖F‖² and the
	// relative gradient vanished: X is a local minimum of the merit function,
	// not necessarily a root. Retry from a different starting point.
	StalledAtMinimum

	// Exhausted means the iteration budget ran out (returned with ErrRootNotFound)
	// or an OnIterate hook aborted the run.
	Exhausted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case StalledAtMinimum:
		return "stalled-at-minimum"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result is the outcome of GlobalNewton and Broyden.
type Result struct {
	// X is the final iterate (a copy; the caller's start vector is never modified).
	X []float64

	// Status tells a genuine root from a stationary point of the merit function.
	Status Status

	// Iterations is the number of outer iterations performed (0 if the start was already a root).
	Iterations int

	// Residual is ‖F(X)‖∞.
	Residual float64
}
