package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness. Message is the
// string surfaced to users and stored in a slice's error slot.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the client taxonomy.
var (
	ErrAuthTokenMissing     = New("AUTH_TOKEN_MISSING", http.StatusUnauthorized, "Authentication token not found")
	ErrTransport            = New("TRANSPORT_ERROR", 0, "network request failed")
	ErrHTTP                 = New("HTTP_ERROR", 0, "request failed")
	ErrDecode               = New("DECODE_ERROR", 0, "malformed response body")
	ErrResponseTooLarge     = New("RESPONSE_TOO_LARGE", 0, "Response too large")
	ErrInvalidResponse      = New("INVALID_RESPONSE", 0, "response failed validation")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConfirmationRequired = New("CONFIRMATION_REQUIRED", http.StatusPreconditionFailed, "confirmation required")
	ErrSuperseded           = New("SUPERSEDED", 0, "request superseded by a newer one")
	ErrStateMiss            = New("STATE_MISS", http.StatusNotFound, "persisted state not found")
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// HTTPStatusMessage is the generic message used when a failed response carries
// no usable error text.
func HTTPStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrTransport.Code, ErrTransport.Status, err.Error())
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, err.Error())
}

// Message returns the user facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Message
}

// StatusOf reports the HTTP status attached to err, or 0.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	return FromError(err).Status
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
