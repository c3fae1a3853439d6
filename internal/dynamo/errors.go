package dynamo

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Domain errors for integration runs.
var (
	// ErrZeroStep indicates a step size of exactly zero.
	ErrZeroStep = errors.New("dynamo: step size must be nonzero")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = errors.New("dynamo: step count must be non-negative")

	// ErrMissingValue indicates a nil x0, y0, h or decimal context.
	ErrMissingValue = errors.New("dynamo: missing run configuration value")

	// ErrTooFewSteps indicates a multistep method cannot bootstrap.
	ErrTooFewSteps = errors.New("dynamo: too few steps for multistep method")

	// ErrLengthMismatch indicates trajectories of different length were paired.
	ErrLengthMismatch = errors.New("dynamo: trajectory length mismatch")

	// ErrArithmetic indicates the decimal type trapped a condition.
	ErrArithmetic = errors.New("dynamo: decimal arithmetic failed")
)

// StepError wraps a failure with the grid position where the run stopped.
type StepError struct {
	Step    int
	X       *apd.Decimal
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (x=%s): %v", e.Step, e.X.Text('f'), e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
