// Package errors provides a lightweight structured error type (DocBabelError)
// for category-based classification of configuration, build and plugin failures.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a DocBabel error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Build and processing errors
	CategoryBuild      ErrorCategory = "build"
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryPlugin     ErrorCategory = "plugin"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocBabelError is a structured error with category, severity and context
type DocBabelError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocBabelError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocBabelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocBabelError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocBabelError) WithContext(key string, value any) *DocBabelError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocBabelError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocBabelError {
	return &DocBabelError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocBabelError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocBabelError {
	return &DocBabelError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first DocBabelError in err's chain.
func As(err error) (*DocBabelError, bool) {
	var dbe *DocBabelError
	if stderrors.As(err, &dbe) {
		return dbe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dbe, ok := As(err); ok {
		return dbe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocBabelError
func GetCategory(err error) ErrorCategory {
	if dbe, ok := As(err); ok {
		return dbe.Category
	}
	return CategoryInternal
}
