package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for store and service operations.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrEventFull       = errors.New("event is fully booked")
	ErrAlreadyEnrolled = errors.New("email already enrolled in this event")
)

// ValidationError reports a malformed or out-of-range field.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrors folds validator messages into one ValidationError.
func NewValidationErrors(msgs []string) *ValidationError {
	return &ValidationError{Message: strings.Join(msgs, "; ")}
}
