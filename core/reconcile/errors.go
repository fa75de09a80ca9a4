package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousMatch is logged when a name match finds zero or several candidate
	// variants with the same attribute set. The record is treated as unmatched.
	ErrAmbiguousMatch = errors.New("ambiguous variant match")

	// ErrSyncDisabled is returned by sync entry points when sync is switched off.
	ErrSyncDisabled = errors.New("catalog sync is disabled")

	// ErrNotFound is returned when a referenced local record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is matched by every ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport is matched by every TransportError.
	ErrTransport = errors.New("remote transport failure")
)

// TransportError reports a failed call to the remote platform: a network error or
// a non-2xx response. It aborts the current pass.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ValidationError reports a record that cannot be processed. The record is
// skipped and the pass continues.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
