package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gkahiu/fltsd/pkg/httputil"
)

// Error carries an HTTP status code and a client-safe message. It is the
// distinguished failure kind the dispatcher formats into the JSON error body
// {"status":"error","message":...}.
type Error struct {
	Code    int
	Message string
}

// NewError creates a service Error with the given status code and message.
func NewError(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("FLTS service error %d: %s", e.Code, e.Message)
}

// WriteResponse serializes the error into the response.
func (e *Error) WriteResponse(w http.ResponseWriter) {
	httputil.WriteError(w, e.Code, e.Message)
}

// AsServiceError extracts an *Error from err, or wraps err as a generic
// internal error when it is of any other kind.
func AsServiceError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return NewError(http.StatusInternalServerError, "Internal FLTS service error"), false
}
