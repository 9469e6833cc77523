// Package apperr defines the error taxonomy shared by all services.
// Handlers map these onto HTTP status codes; services never return raw
// storage errors for conditions a caller can act on.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is authenticated but not allowed to act
	// on the resource. Operations returning it have no side effects.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by authentication on a bad
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level detail about malformed input,
// uniqueness violations and cross-role conflicts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for the given field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
