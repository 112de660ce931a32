package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication credentials were not provided")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrValidation         = errors.New("validation failed")
	ErrTariffInUse        = errors.New("tariff is referenced by orders")
)

// ValidationError carries per-field messages. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError builds a ValidationError without field details.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// FieldError builds a ValidationError for a single field.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Message: ErrValidation.Error(), Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
