// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or date formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that runs validator.Struct(req)
//   - Return validator.ValidationErrors, or CustomValidationErrors for
//     rules tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// specific field that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from body/params/query.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors on failure.
//
// payload must be a pointer so Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		// Echo wraps bind failures (e.g. a non-numeric duration) in its
		// own HTTPError; surface its message in our payload shape.
		message := "Invalid request data"
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if
// validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		customValidationErrors, ok := err.(CustomValidationErrors)
		if !ok {
			// A Validate() implementation may return an errs error
			// directly when it wants full control of the payload.
			var httpErr *errs.HTTPError
			if errors.As(err, &httpErr) {
				if httpErr.Errors == nil {
					return httpErr.Message, []errs.FieldError{}
				}
				return httpErr.Message, httpErr.Errors
			}
			return err.Error(), []errs.FieldError{}
		}

		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "datetime":
			msg = "must be a date in YYYY-MM-DD format"

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
