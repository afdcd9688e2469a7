package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeError is an error carrying a business code.
// It wraps an optional cause so errors.Is / errors.As keep working through it.
type CodeError struct {
	Code    int               // business code
	Msg     string            // client-facing message
	Details map[string]string // optional per-field details
	cause   error
}

// Error returns "msg: cause" when a cause is present, otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to err.
// Usage: errorx.Wrap(err, CodeNotFound, "user not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// WithDetails returns a validation error carrying per-field messages.
func WithDetails(msg string, details map[string]string) *CodeError {
	return &CodeError{
		Code:    CodeInvalidParam,
		Msg:     msg,
		Details: details,
	}
}

// GetCode extracts the business code, defaulting to CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business codes.
const (
	CodeSuccess         = 1000
	CodeInvalidParam    = 1001
	CodeUserExist       = 1002
	CodeUserNotExist    = 1003
	CodeServerBusy      = 1005
	CodeNotFound        = 1008
	CodeDBError         = 1010
	CodeCacheError      = 1011
	CodeTooManyRequests = 1012
	CodeUpstream        = 1013
	CodeDuplicate       = 1014
)

// HTTPStatus maps a business code onto the HTTP status returned to clients.
func HTTPStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeUserExist, CodeDuplicate:
		return http.StatusBadRequest
	case CodeNotFound, CodeUserNotExist:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "Invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "Internal server error")
)

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeNotFound
}

// IsClientError reports whether err maps to a 4xx status and can be shown to
// the caller as is.
func IsClientError(err error) bool {
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		return false
	}
	status := HTTPStatus(codeErr.Code)
	return status >= 400 && status < 500
}
