package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/holo/internal/action"
)

// Dispatcher errors.
var (
	// ErrUnimplemented indicates an action that has no implementation yet.
	ErrUnimplemented = errors.New("dispatcher: action not implemented")

	// ErrInvalidAction indicates the action is invalid.
	ErrInvalidAction = errors.New("dispatcher: invalid action")
)

// UnimplementedError is the panic value raised for actions without an
// implementation.
type UnimplementedError struct {
	Action action.Action
}

// Error implements the error interface.
func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnimplemented, e.Action)
}

// Unwrap returns ErrUnimplemented.
func (e *UnimplementedError) Unwrap() error {
	return ErrUnimplemented
}

// ActionError wraps an error returned while executing an action.
type ActionError struct {
	Action action.Action
	Err    error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActionError) Unwrap() error {
	return e.Err
}
