package user

import (
	"fmt"
	"strings"
)

// ValidationError reports client-detectable, field-level problems with a
// registration request. It blocks account creation; no checkout session is
// requested while one is pending.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Fields: map[string]string{field: message}}
}

// AuthError indicates rejected credentials or an absent session.
type AuthError struct {
	Reason string
}

func (e AuthError) Error() string {
	return e.Reason
}
