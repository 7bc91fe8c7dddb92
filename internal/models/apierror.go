package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a pipeline failure for the external contract
type ErrorKind string

const (
	// KindBadRequest is a client-caused failure, not retryable
	KindBadRequest ErrorKind = "Bad Request"

	// KindNotFound means the user or every referenced plant is absent
	KindNotFound ErrorKind = "Not Found"

	// KindServiceUnavailable means a downstream dependency timed out or
	// errored transiently; the caller may retry
	KindServiceUnavailable ErrorKind = "Service Unavailable"

	// KindInternal is an unexpected failure that should not normally occur
	KindInternal ErrorKind = "Internal Server Error"
)

// APIError is the only error type allowed to cross the dispatcher boundary.
// Each component converts its own failure modes into one of the four kinds;
// raw low-level errors never reach the response formatter.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status
func (e *APIError) StatusCode() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest creates a client-caused error
func BadRequest(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NotFound creates a missing-record error
func NotFound(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

// ServiceUnavailable creates a retryable downstream failure. The retry hint
// is part of the external contract for 503 responses.
func ServiceUnavailable(message string, err error) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message + " Please try again later.",
		Err:     err,
	}
}

// Internal creates an unexpected failure with a generic user-facing message.
// Full detail stays in the wrapped error for logging only.
func Internal(err error) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: "An internal error occurred while processing your request.",
		Err:     err,
	}
}

// AsAPIError extracts an APIError from err, converting anything unclassified
// into an internal error so no raw failure reaches the external contract
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}
