package apperrors

import (
	"fmt"
	"net/http"
)

// Error represents an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidation creates a 400 validation error.
func NewValidation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NewAuthentication creates a webhook/credential authentication error.
// The message must stay generic: signature failures never explain why.
func NewAuthentication(err error) *Error {
	return New(http.StatusBadRequest, "invalid signature", err)
}

// NewProvider wraps a payment-provider failure as a 500.
func NewProvider(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// IsValidation reports whether err is a 400-coded Error without the
// authentication marker message.
func IsValidation(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == http.StatusBadRequest
}

// StatusCode returns the HTTP status for any error, defaulting to 500.
func StatusCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}
