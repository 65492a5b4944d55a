// Package apperror defines the typed errors shared by finsight components.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a transaction id does not exist.
	ErrNotFound = errors.New("transaction not found")

	// ErrNoPendingCommand is returned when a confirmation arrives with nothing to confirm.
	ErrNoPendingCommand = errors.New("no pending command")

	// ErrCaptureUnsupported marks a runtime without speech capture.
	ErrCaptureUnsupported = &UnsupportedError{Capability: "speech recognition"}
)

// ParseError represents input that could not be parsed, such as a malformed
// transaction date.
type ParseError struct {
	Component string
	Field     string
	Value     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Component, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a transaction that breaks a model invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failure reported by a transaction store backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// UnsupportedError reports a capability missing from the runtime.
type UnsupportedError struct {
	Capability string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported in this environment", e.Capability)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
