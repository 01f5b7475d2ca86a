package app

import (
	"errors"
	"fmt"
)

// Errors returned by the session layer.
var (
	// ErrNoFile indicates an operation that requires an open file.
	ErrNoFile = errors.New("no file open")
	// ErrClosed indicates the session has been closed.
	ErrClosed = errors.New("session closed")
)

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
