package apperr

import (
	"errors"
	"net/http"
	"time"

	"github.com/garrettladley/synthonia/internal/formula"
)

type Error struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
	// Fields holds per-field validation messages.
	Fields map[string]string
	// RetryAfter and Reason are only set on 429s.
	RetryAfter time.Duration
	Reason     string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

func BadRequest(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthorized(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusForbidden}
}

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusConflict}
}

func Unprocessable(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusUnprocessableEntity}
}

func Internal(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusInternalServerError, Cause: cause}
}

func ServiceUnavailable(code, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: http.StatusServiceUnavailable}
}

func TooManyRequests(retryAfter time.Duration, reason string) *Error {
	return &Error{
		Code:       "rate_limited",
		Message:    "too many requests",
		StatusCode: http.StatusTooManyRequests,
		RetryAfter: retryAfter,
		Reason:     reason,
	}
}

func Validation(fields map[string]string) *Error {
	return &Error{
		Code:       "validation_failed",
		Message:    "request validation failed",
		StatusCode: http.StatusUnprocessableEntity,
		Fields:     fields,
	}
}

func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// FromDomain maps formula errors onto HTTP errors. It returns nil for any
// other error.
func FromDomain(err error) *Error {
	switch {
	case errors.Is(err, formula.ErrInvalidInput):
		return &Error{Code: "invalid_input", Message: err.Error(), StatusCode: http.StatusBadRequest, Cause: err}
	case errors.Is(err, formula.ErrInsufficientData):
		return &Error{Code: "insufficient_data", Message: err.Error(), StatusCode: http.StatusUnprocessableEntity, Cause: err}
	case errors.Is(err, formula.ErrNoData):
		return &Error{Code: "no_data", Message: err.Error(), StatusCode: http.StatusNotFound, Cause: err}
	default:
		return nil
	}
}
