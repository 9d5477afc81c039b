package engine

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of an engine error. The CLI uses
// it to decide how to report a failure.
type ErrorClass string

const (
	// ErrorClassInvalidSource indicates the source failed its checks.
	// The diagnostics have already been printed.
	ErrorClassInvalidSource ErrorClass = "invalid_source"

	// ErrorClassIO indicates a file could not be read or written.
	ErrorClassIO ErrorClass = "io"

	// ErrorClassConfig indicates an unusable settings file or option.
	ErrorClassConfig ErrorClass = "config"

	// ErrorClassAborted indicates the user declined a prompt.
	ErrorClassAborted ErrorClass = "aborted"
)

// Error represents a classified error with context.
type Error struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Path is the file involved, if any.
	Path string `json:"path,omitempty"`

	// Operation is the command being run when the error occurred.
	Operation string `json:"operation,omitempty"`

	// Err is the underlying error that caused this error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewInvalidSourceError creates a new invalid source error.
func NewInvalidSourceError(message string) *Error {
	return &Error{
		Class:   ErrorClassInvalidSource,
		Message: message,
	}
}

// NewIOError creates a new I/O error.
func NewIOError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassIO,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassConfig,
		Message: message,
		Err:     err,
	}
}

// NewAbortedError creates a new aborted error.
func NewAbortedError(message string) *Error {
	return &Error{
		Class:   ErrorClassAborted,
		Message: message,
	}
}

// WithPath adds file context to an error.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithOperation adds operation context to an error.
func (e *Error) WithOperation(operation string) *Error {
	e.Operation = operation
	return e
}

func isClass(err error, class ErrorClass) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Class == class
	}
	return false
}

// IsInvalidSource returns true if the error is classified as an invalid source.
func IsInvalidSource(err error) bool {
	return isClass(err, ErrorClassInvalidSource)
}

// IsIO returns true if the error is classified as an I/O error.
func IsIO(err error) bool {
	return isClass(err, ErrorClassIO)
}

// IsConfig returns true if the error is classified as a configuration error.
func IsConfig(err error) bool {
	return isClass(err, ErrorClassConfig)
}

// IsAborted returns true if the error is classified as aborted.
func IsAborted(err error) bool {
	return isClass(err, ErrorClassAborted)
}
