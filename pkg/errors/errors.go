// Package errors provides structured error types for the frontier application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes split into two groups. Reportable outcomes are ordinary results
// of a query that the caller is expected to present to a user:
//   - NOT_FOUND: a name or identifier resolves to nothing
//   - AMBIGUOUS: a name resolves to several people and needs a choice
//   - NOT_CONNECTED: two people share no chain of productions
//
// Contract violations are programming errors that abort the operation:
//   - INVALID_PRECONDITION: searching a finished game, playing an occupied cell
//   - INVALID_INPUT, INVALID_CONFIG: malformed user input or configuration
//   - INTERNAL_ERROR, UNSUPPORTED
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "person %q not found", name)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Handle missing person
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Reportable outcomes
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeAmbiguous    Code = "AMBIGUOUS"
	ErrCodeNotConnected Code = "NOT_CONNECTED"

	// Contract violations
	ErrCodeInvalidPrecondition Code = "INVALID_PRECONDITION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeTimeout     Code = "TIMEOUT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Errors that carry their own code (see [Coder]) are honored as well.
// Returns empty string if no code is found.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// Coder is implemented by error types outside this package that map onto a
// [Code], such as the ambiguous-name error of the degrees package.
type Coder interface {
	error
	Code() Code
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsReportable reports whether err is an ordinary outcome (not found,
// ambiguous, not connected) rather than a failure.
func IsReportable(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeAmbiguous, ErrCodeNotConnected:
		return true
	}
	return false
}
