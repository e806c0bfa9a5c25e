package media

import (
	"sort"
	"strings"
)

// ValidationError reports caller input that failed shape checks. Field names
// map to human readable messages suitable for API responses.
type ValidationError struct {
	errors map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{errors: make(map[string]string)}
}

// FieldError builds a validation failure for a single field.
func FieldError(field, message string) *ValidationError {
	err := NewValidationError()
	err.Add(field, message)
	return err
}

func (err *ValidationError) Add(field, message string) {
	err.errors[field] = message
}

func (err *ValidationError) Empty() bool {
	return len(err.errors) == 0
}

func (err *ValidationError) Errors() map[string]string {
	return err.errors
}

func (err *ValidationError) Error() string {
	if err.Empty() {
		return "validation failed"
	}

	fields := make([]string, 0, len(err.errors))
	for f := range err.errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, err.errors[f])
	}

	return strings.Join(messages, "; ")
}
