package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string            // Error code (e.g., VALIDATION_ERROR)
	Message    string            // User-friendly message
	HTTPStatus int               // HTTP status code
	Err        error             // Wrapped original error (optional)
	Fields     map[string]string // Per-field messages for validation failures
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Validation returns a 400 carrying one message per offending field.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    "Validation failed",
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

func ValidationField(field, message string) *AppError {
	return Validation(map[string]string{field: message})
}

// IsValidation reports whether err carries per-field validation messages.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

// ToHTTP flattens any error into what the transport layer renders. Errors
// that are not AppError are reported as internal failures.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Fields,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
