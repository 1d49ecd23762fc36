// Package errors provides the closed error taxonomy for the REST boundary.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failed REST call. Callers switch on Kind instead of
// probing optional fields on a dynamic payload.
type Kind string

const (
	// KindNetwork is a transport failure: no HTTP response was received.
	KindNetwork Kind = "NETWORK"
	// KindAuth is a 401: the credential was rejected by the server.
	KindAuth Kind = "AUTH"
	// KindValidation is any other 4xx: the request was understood and refused,
	// with a server-provided message to surface verbatim.
	KindValidation Kind = "VALIDATION"
	// KindServer is a 5xx.
	KindServer Kind = "SERVER"
)

// APIError is the single error shape returned by the REST client.
type APIError struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("APIError[%s %d]: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("APIError[%s]: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "Network Error",
		cause:   err,
	}
}

// NewAuthError reports a rejected credential.
func NewAuthError(message string) *APIError {
	if message == "" {
		message = "Authentication failed"
	}
	return &APIError{
		Kind:    KindAuth,
		Status:  401,
		Message: message,
	}
}

// NewValidationError carries the server's rejection message verbatim.
func NewValidationError(status int, message string) *APIError {
	if message == "" {
		message = "Request rejected"
	}
	return &APIError{
		Kind:    KindValidation,
		Status:  status,
		Message: message,
	}
}

// NewServerError reports a 5xx response.
func NewServerError(status int, message string) *APIError {
	if message == "" {
		message = "Server error"
	}
	return &APIError{
		Kind:    KindServer,
		Status:  status,
		Message: message,
	}
}

// FromStatus normalizes an HTTP status plus server message into an APIError.
func FromStatus(status int, message string) *APIError {
	switch {
	case status == 401:
		return NewAuthError(message)
	case status >= 400 && status < 500:
		return NewValidationError(status, message)
	default:
		return NewServerError(status, message)
	}
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func isKind(err error, kind Kind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsAuth reports whether err is a rejected credential.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsValidation reports whether err is a business/validation rejection.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsServer reports whether err is a 5xx.
func IsServer(err error) bool { return isKind(err, KindServer) }

// UserMessage returns the text fit for surfacing in a toast.
func UserMessage(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
