package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidDateFormat indicates a date string that no supported layout
	// could parse.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDateValue indicates a well-formed date string whose
	// components do not denote a real calendar day.
	ErrInvalidDateValue = errors.New("invalid date value")

	// ErrNotFound indicates an identity-addressed lookup with no match.
	ErrNotFound = errors.New("report not found")
)

// ValidationError carries field-level problems with a submission.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
