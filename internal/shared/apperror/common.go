package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		CodeInvalidInput,
		"The provided id is invalid",
		http.StatusBadRequest,
	)
)

// NotFound builds a 404 error for a named resource, e.g. NotFound("Employee").
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// InvalidRequest rejects a request that is malformed as a whole rather than
// per field (empty search query, unparsable filter).
func InvalidRequest(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// Internal hides the cause behind the generic message; the cause stays
// reachable through errors.Unwrap for logging.
func Internal(err error) *AppError {
	return Wrap(err, CodeInternalError, ErrInternal.Message, http.StatusInternalServerError)
}
