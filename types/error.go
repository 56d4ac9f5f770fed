// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package types

import "fmt"

// ErrorCode represents a unified error code across the module.
type ErrorCode string

// Parse-time error codes
const (
	ErrSpecStructure     ErrorCode = "SPEC_STRUCTURE"
	ErrOperationParse    ErrorCode = "OPERATION_PARSE"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrFetch             ErrorCode = "FETCH_ERROR"
)

// Call-time error codes
const (
	ErrMissingParameter  ErrorCode = "MISSING_PARAMETER"
	ErrUnknownParameter  ErrorCode = "UNKNOWN_PARAMETER"
	ErrTypeMismatch      ErrorCode = "TYPE_MISMATCH"
	ErrMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	ErrTransportFailure  ErrorCode = "TRANSPORT_FAILURE"
	ErrUpstreamError     ErrorCode = "UPSTREAM_ERROR"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Service    string    `json:"service,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithService sets the service the error originated from.
func (e *Error) WithService(service string) *Error {
	e.Service = service
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
