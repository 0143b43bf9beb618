package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

type appendPayload struct {
	Description string `form:"description" json:"description" validate:"required"`
	Duration    int    `form:"duration" json:"duration" validate:"required,min=1"`
	Date        string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (p *appendPayload) Validate() error {
	return validate.Struct(p)
}

func newContext(t *testing.T, body string) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	return httpErr
}

func TestBindAndValidateAcceptsValidPayload(t *testing.T) {
	c := newContext(t, `{"description":"run","duration":30,"date":"2024-03-05"}`)

	payload := &appendPayload{}
	if err := validation.BindAndValidate(c, payload); err != nil {
		t.Fatalf("expected payload to pass, got %v", err)
	}

	if payload.Description != "run" || payload.Duration != 30 {
		t.Fatalf("expected bound payload, got %+v", payload)
	}
}

func TestBindAndValidateMissingRequiredField(t *testing.T) {
	c := newContext(t, `{"duration":30}`)

	err := validation.BindAndValidate(c, &appendPayload{})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}

	found := false
	for _, fieldErr := range httpErr.Errors {
		if fieldErr.Field == "description" && fieldErr.Error == "is required" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 'description is required' field error, got %+v", httpErr.Errors)
	}
}

func TestBindAndValidateMalformedDate(t *testing.T) {
	c := newContext(t, `{"description":"run","duration":30,"date":"03/05/2024"}`)

	err := validation.BindAndValidate(c, &appendPayload{})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}

	found := false
	for _, fieldErr := range httpErr.Errors {
		if fieldErr.Field == "date" && fieldErr.Error == "must be a date in YYYY-MM-DD format" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a date format field error, got %+v", httpErr.Errors)
	}
}

func TestBindAndValidateBindFailure(t *testing.T) {
	// duration is an int; a string should fail at bind time, not be
	// silently coerced.
	c := newContext(t, `{"description":"run","duration":"thirty"}`)

	err := validation.BindAndValidate(c, &appendPayload{})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}
}

func TestBindAndValidateFormEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("description=run&duration=30"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	payload := &appendPayload{}
	if err := validation.BindAndValidate(c, payload); err != nil {
		t.Fatalf("expected form payload to pass, got %v", err)
	}

	if payload.Description != "run" || payload.Duration != 30 {
		t.Fatalf("expected bound form payload, got %+v", payload)
	}
}
