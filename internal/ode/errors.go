package ode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain errors for integration.
var (
	// ErrIntegration is matched by every failure raised while stepping.
	ErrIntegration = errors.New("ode: integration failed")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive step fell below the minimum.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrMaxSteps indicates the step budget ran out before the end time.
	ErrMaxSteps = errors.New("ode: maximum number of steps exceeded")

	// ErrInvalidGrid indicates an evaluation grid that cannot be integrated over.
	ErrInvalidGrid = errors.New("ode: invalid evaluation grid")

	// ErrInvalidConfig indicates solver options out of range.
	ErrInvalidConfig = errors.New("ode: invalid solver config")

	// ErrDimensionMismatch indicates a state whose length differs from the system.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)

// SimulationError wraps a stepping failure with the position it happened at.
// Every SimulationError matches ErrIntegration.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

func (e *SimulationError) Is(target error) bool {
	return target == ErrIntegration
}
