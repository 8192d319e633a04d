package apperror

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeBandsInvalid       Code = "BANDS_INVALID"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAdminNotConfigured Code = "ADMIN_NOT_CONFIGURED"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Error is the classified error returned by services and mapped to HTTP by the controllers.
type Error struct {
	Code    Code
	Message string
	Details []string
}

func (e *Error) Error() string { return e.Message }

// Status maps the code onto an HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeValidation, CodeBandsInvalid:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeAdminNotConfigured:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func New(code Code, msg string, details ...string) *Error {
	return &Error{Code: code, Message: msg, Details: details}
}

func Validation(msg string, details ...string) error { return New(CodeValidation, msg, details...) }
func NotFound(msg string) error                      { return New(CodeNotFound, msg) }
func Conflict(msg string) error                      { return New(CodeConflict, msg) }
func Unauthorized(msg string) error                  { return New(CodeUnauthorized, msg) }

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err is an *Error carrying code.
func HasCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
