package atom

import (
	"errors"
	"fmt"
)

// Sentinel errors for feed construction.
// Use errors.Is() to check for these error kinds.
var (
	// ErrInvalidInput indicates a constructor or setter received a value
	// that violates the field's grammar or range. The target is left unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotPresent indicates a getter was called for an optional field that is not set.
	ErrNotPresent = errors.New("not present")
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input on field '%s' (%q): %s", e.Field, e.Value, e.Message)
}

// Unwrap returns ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotPresentError reports a read of an unset optional field.
type NotPresentError struct {
	Field string
}

func (e *NotPresentError) Error() string {
	return fmt.Sprintf("field '%s' is not present", e.Field)
}

// Unwrap returns ErrNotPresent.
func (e *NotPresentError) Unwrap() error {
	return ErrNotPresent
}

func invalid(field, value, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func notPresent(field string) error {
	return &NotPresentError{Field: field}
}
