// Package errors defines the user-facing error type for fixshift runs.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStructural covers malformed fixture shape: non-array top
	// level, non-object items, missing or invalid "fields".
	ErrorTypeStructural ErrorType = "Structural"
	// ErrorTypeFormat covers unparsable user input such as --latest-time.
	ErrorTypeFormat ErrorType = "Format"
	// ErrorTypeFileSystem covers read/write failures on the fixture files.
	ErrorTypeFileSystem ErrorType = "FileSystem"
)

// FixshiftError is a user-friendly error with actionable guidance.
type FixshiftError struct {
	Type      ErrorType
	Message   string
	Cause     string
	Solutions []string
}

// Error implements the error interface
func (e *FixshiftError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != "" {
		sb.WriteString(fmt.Sprintf("\nCause: %s", e.Cause))
	}

	if len(e.Solutions) > 0 {
		sb.WriteString("\n\nSolutions:")
		for _, solution := range e.Solutions {
			sb.WriteString(fmt.Sprintf("\n  %s", solution))
		}
	}

	return sb.String()
}

// New creates a new FixshiftError
func New(errType ErrorType, message string) *FixshiftError {
	return &FixshiftError{
		Type:    errType,
		Message: message,
	}
}

// Structuralf creates a structural error for the fixture item at the given
// index.
func Structuralf(index int, format string, args ...any) *FixshiftError {
	return New(ErrorTypeStructural, fmt.Sprintf("fixture item at index %d %s", index, fmt.Sprintf(format, args...)))
}

// WithCause adds cause information
func (e *FixshiftError) WithCause(cause string) *FixshiftError {
	e.Cause = cause
	return e
}

// WithSolutions adds solution steps
func (e *FixshiftError) WithSolutions(solutions ...string) *FixshiftError {
	e.Solutions = append(e.Solutions, solutions...)
	return e
}

// IsType reports whether err is a FixshiftError of the given type.
func IsType(err error, errType ErrorType) bool {
	fe, ok := err.(*FixshiftError)
	return ok && fe.Type == errType
}
