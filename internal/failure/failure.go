// Package failure carries an HTTP status alongside an error message so that
// services can decide the response code and handlers only translate it.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with a standard HTTP response code.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ForbiddenError is returned by workflows called without the admin
// capability.
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "admin capability required"}

// Error returns the message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest wraps err as a 400.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a 400 with msg.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a 401 with msg.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Internal returns a 500 with a message safe to show to clients.  The
// underlying cause is expected to have been logged by the caller.
func Internal(msg string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: msg,
	}
}

// NotFound returns a 404 naming the missing entity.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName + " not found",
	}
}

// Conflict returns a 409 with message.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Forbidden returns a 403 with msg.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the code carried by err, or 500 for plain errors.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Message returns the client-facing message of err.  Plain errors are
// hidden behind a generic text.
func Message(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return http.StatusText(http.StatusInternalServerError)
}
