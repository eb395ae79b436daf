// Package apierr defines the typed errors that cross the service/handler
// boundary. Every error carries an HTTP status and a stable machine code;
// anything else is treated as an internal server error and sanitized.
package apierr

import "net/http"

// Error codes surfaced to clients.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeServer     = "SERVER_ERROR"
)

// Error is an API error with an HTTP status and machine-readable code.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation is a 400 VALIDATION_ERROR.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message)
}

// NotFound is a 404 NOT_FOUND.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// Conflict is a 409 CONFLICT for requests that are valid but illegal in the
// current state.
func Conflict(message string) *Error {
	return New(http.StatusConflict, CodeConflict, message)
}
