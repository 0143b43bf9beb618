package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Extra payload:
//   - code: optional custom code string (nil defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 Conflict HTTPError. Used when a
// uniqueness constraint rejects a write, e.g. a taken username.
func NewConflictError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusConflict))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, not the real internal error:
// clients do not need stack traces.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400
// Bad Request HTTPError with a consistent structure.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}
