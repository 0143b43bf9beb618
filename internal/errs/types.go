package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "duration", "error": "must be at least 1" }
type FieldError struct {
	// Field is the field name the error relates to (e.g. "duration").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is designed
// to be serialized directly to JSON.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "USERNAME_TAKEN").
//   - Message: human-friendly message, serialized as `error`.
//   - Status: HTTP status code.
//   - Override: lets middleware decide whether to replace the message.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"error"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError, so
// errors.Is(err, &HTTPError{}) can be used as a type check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an
// UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
