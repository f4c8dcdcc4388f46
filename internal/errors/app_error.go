package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type surfaced to API callers. Code is stable and
// machine readable, Message is safe to show, Err keeps the cause for logs.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeDuplicateEntry  = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
)

var statusByCode = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeDatabaseError:   http.StatusInternalServerError,
	ErrCodeDuplicateEntry:  http.StatusConflict,
	ErrCodeThirdPartyError: http.StatusBadGateway,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
}

// StatusFor maps a code to its HTTP status. Unknown codes are 500.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

func newError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: StatusFor(code)}
}

func ValidationError(message string) *AppError { return newError(ErrCodeValidation, message) }

// AddValidationError names the offending field.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

func BadRequestError(message string) *AppError { return newError(ErrCodeBadRequest, message) }

// NotFoundError is also returned when the entity exists under another
// tenant, so callers cannot probe foreign ids.
func NotFoundError(message string) *AppError { return newError(ErrCodeNotFound, message) }

// ConflictError covers state transitions that lost a race or start from a
// terminal status.
func ConflictError(message string) *AppError { return newError(ErrCodeConflict, message) }

func UnauthorizedError(message string) *AppError { return newError(ErrCodeUnauthorized, message) }

func ForbiddenError(message string) *AppError { return newError(ErrCodeForbidden, message) }

func InternalError(message string) *AppError { return newError(ErrCodeInternal, message) }

func DatabaseError(message string) *AppError { return newError(ErrCodeDatabaseError, message) }

func DuplicateEntryError(message string) *AppError { return newError(ErrCodeDuplicateEntry, message) }

// ThirdPartyError is for Redis or SendGrid failing underneath a request.
func ThirdPartyError(message string) *AppError { return newError(ErrCodeThirdPartyError, message) }

func TooManyRequestsError(message string) *AppError { return newError(ErrCodeTooManyRequests, message) }

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
