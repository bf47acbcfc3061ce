// Package errors defines the service error taxonomy shared by all processes.
//
// Business failures (Conflict, Unauthorized, NotFound, Validation) and
// unexpected failures (Internal) cross the RPC boundary in the same
// {status, message} shape; the HTTP status carried here is that status.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category in machine-readable form.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeConflict     Code = "CONFLICT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ServiceError is the uniform error shape used across service boundaries.
type ServiceError struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	HTTPStatus int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Fields     []FieldError           `json:"errors,omitempty"`
	cause      error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ServiceError) Unwrap() error { return e.cause }

// WithDetails attaches a key/value pair and returns the receiver.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation builds a 400 error carrying a field-by-field breakdown.
func Validation(message string, fields []FieldError) *ServiceError {
	return &ServiceError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// Conflict builds a 409 error.
func Conflict(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// InvalidToken builds a 401 error for token decode/signature/expiry failures.
// The cause is retained for logs but never serialized.
func InvalidToken(cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeUnauthorized,
		Message:    "Invalid or Expired Token",
		HTTPStatus: http.StatusUnauthorized,
		cause:      cause,
	}
}

// NotFound builds a 404 error.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// RateLimitExceeded builds a 429 error.
func RateLimitExceeded() *ServiceError {
	return &ServiceError{
		Code:       CodeRateLimited,
		Message:    "Too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Internal wraps an unexpected failure into the uniform shape.
func Internal(message string, cause error) *ServiceError {
	if message == "" {
		message = "Internal server error"
	}
	return &ServiceError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

// FromStatus rebuilds a ServiceError from a wire-level {status, message}
// fault. Unknown statuses collapse to Internal, preserving the message.
func FromStatus(status int, message string) *ServiceError {
	switch status {
	case http.StatusBadRequest:
		return Validation(message, nil)
	case http.StatusUnauthorized:
		return Unauthorized(message)
	case http.StatusNotFound:
		return NotFound(message)
	case http.StatusConflict:
		return Conflict(message)
	case http.StatusTooManyRequests:
		return RateLimitExceeded()
	default:
		return Internal(message, nil)
	}
}

// GetServiceError extracts a *ServiceError from err, or nil if none is
// present in the chain.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// Ensure converts any error into a ServiceError, wrapping unexpected ones
// as Internal so only the uniform shape crosses a boundary.
func Ensure(err error) *ServiceError {
	if err == nil {
		return nil
	}
	if se := GetServiceError(err); se != nil {
		return se
	}
	return Internal("Internal server error", err)
}
