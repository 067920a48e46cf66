// Package apperr defines the error kinds surfaced at the controller
// boundary. Handlers match with errors.Is/As and translate to transport
// status codes; repositories and services never format status codes
// themselves.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
	ErrIntegrity       = errors.New("integrity violation")
	ErrValidation      = errors.New("validation failed")
)

// Validation carries field-level messages for a malformed payload.
type Validation struct {
	Fields map[string]string
}

var _ error = Validation{}

func (v Validation) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v Validation) Unwrap() error { return ErrValidation }

// Invalid builds a single-field validation error.
func Invalid(field, msg string) Validation {
	return Validation{Fields: map[string]string{field: msg}}
}

// NotFoundf wraps ErrNotFound with a resource description.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Integrityf wraps ErrIntegrity with a constraint description.
func Integrityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}
