// Package apierrors defines the coded error type shared across services and
// the HTTP layer. Services wrap failures with a code; handlers map the code
// onto an HTTP status without inspecting error strings.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the normalized failure taxonomy.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"

	// Verification-flow failures. These are folded into result envelopes at
	// the provider boundary and never abort a submission loop.
	CodeInsufficientCredit Code = "insufficient_credit"
	CodeNetworkFailure     Code = "network_failure"
	CodeProviderError      Code = "provider_error"
	CodeParseFailure       Code = "parse_failure"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the code from an error chain. Unknown errors are internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from an error chain, empty when uncoded.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// HTTPStatus maps a code onto the response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeParseFailure:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInsufficientCredit:
		return http.StatusPaymentRequired
	case CodeProviderError, CodeNetworkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
