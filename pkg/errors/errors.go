// Package errors provides structured error types for apkgraph.
//
// Error codes split failures into the two classes the tool cares about:
// setup failures (configuration, output writing) that must abort the run,
// and resolution failures (network, missing packages) that degrade to an
// empty dependency list.
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "missing required field %q", field)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // abort with remediation text
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Configuration errors - fatal before any traversal.
	ErrCodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resolution errors - recoverable, degrade to empty results.
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeTimeout         Code = "TIMEOUT"
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeBadIndex        Code = "BAD_INDEX"

	// Output errors - fatal, the diagram is the terminal artifact.
	ErrCodeOutputWrite Code = "OUTPUT_WRITE"

	// Everything else.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsFatal reports whether err should abort the whole run. Only
// configuration and output-write failures terminate; everything inside
// the traversal degrades to partial results.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfigNotFound, ErrCodeInvalidConfig, ErrCodeOutputWrite:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
