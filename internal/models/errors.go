package models

import (
	"errors"
	"sort"
	"strings"
)

// InvalidCredentialsMessage is the single client-facing text for failed
// authentication.
const InvalidCredentialsMessage = "The provided credentials are incorrect."

var (
	// ErrInvalidCredentials is returned for both unknown identities and wrong
	// passwords; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrMalformedInput     = errors.New("invalid JSON file")
)

// ValidationError carries field level messages for rejected request input
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// NewValidationError builds a ValidationError with a single field message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Error lists the failing fields in a stable order
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
