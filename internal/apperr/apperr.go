// Package apperr defines the error taxonomy shared by services and transports.
// Every failure leaving a service is an *Error carrying a machine-readable Code
// and a message safe to show to clients.
package apperr

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound means the operation referenced an id with no matching row.
	CodeNotFound Code = "NOT_FOUND"
	// CodeValidationFailure covers empty titles, negative positions and malformed input.
	CodeValidationFailure Code = "VALIDATION_FAILURE"
	// CodeInvalidScope means a reorder set does not match the current scope membership.
	CodeInvalidScope Code = "INVALID_SCOPE"
	// CodeStoreUnavailable means the persistence layer failed for infrastructural reasons.
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	// CodeDuplicateRequest means an Idempotency-Key was already used for this request.
	CodeDuplicateRequest Code = "DUPLICATE_REQUEST"
)

// HTTPStatus maps a code to the status the HTTP transport responds with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailure:
		return http.StatusBadRequest
	case CodeInvalidScope:
		return http.StatusUnprocessableEntity
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeDuplicateRequest:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Client-facing message
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NotFound is shorthand for New(CodeNotFound, message).
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// Validation is shorthand for New(CodeValidationFailure, message).
func Validation(message string) *Error {
	return New(CodeValidationFailure, message)
}

// InvalidScope is shorthand for New(CodeInvalidScope, message).
func InvalidScope(message string) *Error {
	return New(CodeInvalidScope, message)
}

// Unavailable wraps a store failure.
func Unavailable(message string, cause error) *Error {
	return Wrap(CodeStoreUnavailable, message, cause)
}

// CodeOf extracts the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// MessageOf returns the client-facing message of err. Errors outside the
// taxonomy get a generic message so internals never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
