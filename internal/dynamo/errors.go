package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for system construction and runs.
var (
	// ErrInvalidState indicates a position or velocity that is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates positions, velocities, masses or a
	// caller buffer disagree on the body count.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between arrays and body count")

	// ErrEmptySystem indicates a system with no bodies.
	ErrEmptySystem = errors.New("dynamo: system has no bodies")

	// ErrAlreadyRun indicates a driver was asked to run a second time.
	ErrAlreadyRun = errors.New("dynamo: run already completed")
)

// SimulationError wraps an error with the step it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
