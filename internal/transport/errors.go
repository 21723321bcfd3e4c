package transport

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a referenced record, parent or item does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError carries field-level problems; nothing has been persisted
// when it is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a problem for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether any problem was recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// FieldError is a convenience constructor for a single-field failure.
func FieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}
