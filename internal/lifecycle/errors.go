package lifecycle

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when an operation is called from a state that
// does not allow it.
var ErrInvalidState = errors.New("invalid lifecycle state")

// Initialize steps, reported in FatalError.Step.
const (
	StepConnect  = "connect"
	StepRegister = "register"
	StepRoutes   = "routes"
)

// FatalError is a startup failure. The process must not serve traffic after
// receiving one.
type FatalError struct {
	Step string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("startup failed at %s: %v", e.Step, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func stateError(op string, got State) error {
	return fmt.Errorf("%s from %s: %w", op, got, ErrInvalidState)
}
