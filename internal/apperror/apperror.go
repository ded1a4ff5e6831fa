// Package apperror defines the errors the HTTP boundary turns into field-level
// messages or 404 responses.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries user-correctable problems keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ReferenceError reports a foreign key whose target does not exist, or a row
// that cannot be removed while others still reference it.
type ReferenceError struct {
	Field   string
	Message string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference error on %s: %s", e.Field, e.Message)
}

func Reference(field, message string) *ReferenceError {
	return &ReferenceError{Field: field, Message: message}
}

// NotFoundError reports a missing entity for show/update/delete.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// FieldErrors flattens validation and reference errors into field messages.
// ok is false for any other kind of error.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	var re *ReferenceError
	if errors.As(err, &re) {
		return map[string]string{re.Field: re.Message}, true
	}
	return nil, false
}
