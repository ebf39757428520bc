// Package errors defines the error kinds raised by the documentation viewer.
//
// Every error carries a code so callers (the HTTP layer, the terminal
// frontend) can decide how to surface it without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a category of error.
type ErrorCode string

const (
	// ErrCodeMissingField indicates a route lacks a field the renderer needs.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeInvalidArgument indicates an operation was called with an argument
	// that violates one of its invariants (e.g. activating a foreign route item).
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeConfig indicates invalid or incomplete configuration.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeLoad indicates a route source could not be loaded or decoded.
	ErrCodeLoad ErrorCode = "LOAD_ERROR"

	// ErrCodeNotFound indicates a requested route does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error is a domain error with a code and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// MissingField reports that a route has no value for field.
func MissingField(field string) *Error {
	return New(ErrCodeMissingField, fmt.Sprintf("route is missing field %q", field))
}

func InvalidArgument(format string, args ...any) *Error {
	return New(ErrCodeInvalidArgument, fmt.Sprintf(format, args...))
}

func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

func NewLoadError(message string, cause error) *Error {
	return Wrap(ErrCodeLoad, message, cause)
}

func NotFound(format string, args ...any) *Error {
	return New(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// HasCode reports whether any error in err's chain is an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}
