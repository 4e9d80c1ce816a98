package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrJobNotFound     = errors.New("job not found")
	ErrProfileNotFound = errors.New("candidate profile not found")
	ErrInternal        = errors.New("internal error")
)

// ValidationError names the offending field. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
