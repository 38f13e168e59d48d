// Package errors provides structured error types for umlayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP host
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - CYCLIC_HIERARCHY: The inheritance sub-graph is not a DAG
//   - INVARIANT_VIOLATION: A pipeline stage received a malformed graph
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "vertical gap must be >= 0, got %v", gap)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	var cyc *errors.CyclicHierarchyError
//	if stderrors.As(err, &cyc) {
//	    fmt.Println("cycle through", cyc.Nodes)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Layout errors
	ErrCodeCyclicHierarchy    Code = "CYCLIC_HIERARCHY"
	ErrCodeInvariantViolation Code = "INVARIANT_VIOLATION"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// coder is implemented by error types that carry a Code without being *Error.
type coder interface {
	Code() Code
}

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
// It unwraps the error chain looking for an *Error or any error exposing a
// Code method (such as *CyclicHierarchyError) with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// As is [errors.As], re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// CyclicHierarchyError is returned when the inheritance/interface sub-graph
// contains a cycle. Nodes holds the identities of the shapes on the cycle.
// Layout never mutates the diagram when this error is returned.
type CyclicHierarchyError struct {
	Nodes []string
}

// Error implements the error interface.
func (e *CyclicHierarchyError) Error() string {
	if len(e.Nodes) == 0 {
		return "cyclic hierarchy"
	}
	return fmt.Sprintf("cyclic hierarchy through %s", strings.Join(e.Nodes, " -> "))
}

// Code returns the error code for this error type.
func (e *CyclicHierarchyError) Code() Code {
	return ErrCodeCyclicHierarchy
}

// Invariant reports an internal pipeline defect. It is a convenience for
// New(ErrCodeInvariantViolation, ...).
func Invariant(format string, args ...any) *Error {
	return New(ErrCodeInvariantViolation, format, args...)
}
