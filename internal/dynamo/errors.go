package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidSubsteps indicates a substep count below one.
	ErrInvalidSubsteps = errors.New("dynamo: substep count must be at least 1")

	// ErrInvalidStep indicates a non-positive or non-finite tick duration.
	ErrInvalidStep = errors.New("dynamo: step size must be positive")

	// ErrMalformedPayload indicates a render payload without the expected series layout.
	ErrMalformedPayload = errors.New("dynamo: precondition violated (malformed render payload)")

	// ErrInvalidSampleCount indicates a sample count that cannot span a closed interval.
	ErrInvalidSampleCount = errors.New("dynamo: sample count must be at least 2")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// TickError wraps a rejected tick with the state it was rejected at.
type TickError struct {
	Time    float64
	X       float64
	Wrapped error
}

func (e *TickError) Error() string {
	return e.Wrapped.Error()
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
