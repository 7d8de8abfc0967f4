package library

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/validate"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"

	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Error is the single failure type that crosses the service boundary.
// Status is the HTTP status the envelope is rendered with.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts an *Error, wrapping anything else as an internal error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

func Validation(errs validate.Errors) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "Validation failed",
		Details: map[string]any{"errors": errs},
		Status:  http.StatusUnprocessableEntity,
	}
}

// FieldInvalid is a single-field validation failure.
func FieldInvalid(field, typ, msg string) *Error {
	var errs validate.Errors
	errs.Add(field, typ, msg)
	return Validation(errs)
}

func EmptyUpdate() *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "No fields to update",
		Status:  http.StatusBadRequest,
	}
}

func NotFound(id int64) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Book with ID %d not found", id),
		Status:  http.StatusNotFound,
	}
}

func RouteNotFound(path string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: "Resource not found",
		Details: map[string]any{"path": path},
		Status:  http.StatusNotFound,
	}
}

func MethodNotAllowed(method string) *Error {
	return &Error{
		Code:    CodeMethodNotAllowed,
		Message: "Method " + method + " not allowed",
		Status:  http.StatusMethodNotAllowed,
	}
}

func TooLarge(limit int64) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "Request body too large",
		Details: map[string]any{"limit_bytes": limit},
		Status:  http.StatusRequestEntityTooLarge,
	}
}

func Conflict(err error) *Error {
	return &Error{
		Code:    CodeConflict,
		Message: "Book with this ISBN already exists",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func Internal(err error) *Error {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    CodeInternal,
		Message: "Internal server error",
		Details: map[string]any{"error": msg},
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}
