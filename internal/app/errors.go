package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the event loop is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrAssetMissing indicates a user-configured asset path (background
	// image or audio) could not be used; the built-in default applies.
	ErrAssetMissing = errors.New("configured asset missing")

	// ErrConfigurationDrift indicates a settings field carried a value
	// this build does not understand. The field is skipped, never fatal.
	ErrConfigurationDrift = errors.New("unrecognized settings value")
)

// OperationError wraps a failure of a named operation on a target.
type OperationError struct {
	Op     string // operation name, e.g. "save", "open", "export"
	Target string // file path or document name
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches both the wrapper instance and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}
