package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError and decides its HTTP status.
type Kind string

const (
	KindBadRequest      Kind = "bad_request"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindTooManyRequests Kind = "too_many_requests"
	KindDatabase        Kind = "database_error"
	KindBadGateway      Kind = "bad_gateway"
)

// ErrorCode is the machine readable reason of an error.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Database errors
	ErrCodeDBError    ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound ErrorCode = "DB_NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidRange  ErrorCode = "INVALID_RANGE"

	// Business errors
	ErrCodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeSlotUnavailable   ErrorCode = "SLOT_UNAVAILABLE"
	ErrCodeDuplicate         ErrorCode = "DUPLICATE"
	ErrCodeEditWindowClosed  ErrorCode = "EDIT_WINDOW_CLOSED"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrCodeUpstream          ErrorCode = "UPSTREAM_ERROR"
)

// Issue is one field level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// AppError is the error type services return to controllers.
type AppError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Err     error
	Issues  []Issue
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status maps the error kind to an HTTP status code.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	case KindBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError
func NewAppError(kind Kind, code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(KindNotFound, ErrCodeDBNotFound, message, nil)
}

func BadRequest(code ErrorCode, message string) *AppError {
	return NewAppError(KindBadRequest, code, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(KindForbidden, ErrCodeForbidden, message, nil)
}

func Unauthorized(code ErrorCode, message string) *AppError {
	return NewAppError(KindUnauthorized, code, message, nil)
}

// Database wraps a persistence failure.
func Database(message string, err error) *AppError {
	return NewAppError(KindDatabase, ErrCodeDBError, message, err)
}

func BadGateway(message string, err error) *AppError {
	return NewAppError(KindBadGateway, ErrCodeUpstream, message, err)
}

// Validation builds a BadRequest carrying the individual field issues.
func Validation(message string, issues []Issue) *AppError {
	e := NewAppError(KindBadRequest, ErrCodeValidation, message, nil)
	e.Issues = issues
	return e
}

// IsAppError reports whether err is or wraps an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the first AppError in err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Kind == kind
}
