package apierror

import (
	"fmt"
	"net/http"
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeDatabase         = "DATABASE_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRequestTimeout   = "REQUEST_TIMEOUT"
)

// FieldError names a single violated constraint on a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a standalone error listing every violated field at once.
// Validation helpers return it directly; Translate re-types it into a
// VALIDATION_ERROR response.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", fe[0].Field, fe[0].Message)
}

type APIError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Fields     []FieldError `json:"fields,omitempty"`
	ErrorID    string       `json:"errorId,omitempty"`
	HTTPStatus int          `json:"-"`
	cause      error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

func Validation(message string, fields ...FieldError) *APIError {
	return &APIError{
		Code:       CodeValidation,
		Message:    message,
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *APIError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NotFound(message string) *APIError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func Conflict(message string) *APIError {
	return New(CodeConflict, message, http.StatusConflict)
}

func RateLimited(message string) *APIError {
	return New(CodeRateLimited, message, http.StatusTooManyRequests)
}

func MethodNotAllowed(method string) *APIError {
	return New(CodeMethodNotAllowed, fmt.Sprintf("method %s is not allowed", method), http.StatusMethodNotAllowed)
}

// Database wraps a storage-level failure. The underlying error stays
// attached for logs and development responses but is never shown in
// production output.
func Database(message string, cause error) *APIError {
	return &APIError{
		Code:       CodeDatabase,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

func Internal(message string) *APIError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// Assert returns err when cond is false, nil otherwise. Used for invariant
// checks inside handlers.
func Assert(cond bool, err error) error {
	if cond {
		return nil
	}
	return err
}

func Assertf(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return Internal("assertion failed: " + fmt.Sprintf(format, args...))
}
