package sqlerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	return httpErr
}

func TestHandleErrorUsernameConstraint(t *testing.T) {
	err := sqlerr.HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: sqlerr.UsernameUniqueConstraint,
	})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 409 {
		t.Fatalf("expected status 409, got %d", httpErr.Status)
	}
	if httpErr.Message != "Username already taken" {
		t.Fatalf("expected %q, got %q", "Username already taken", httpErr.Message)
	}
	if httpErr.Code != "USERNAME_TAKEN" {
		t.Fatalf("expected code USERNAME_TAKEN, got %q", httpErr.Code)
	}
}

func TestHandleErrorExerciseOwnerConstraint(t *testing.T) {
	err := sqlerr.HandleError(&pgconn.PgError{
		Code:           "23503",
		TableName:      "exercises",
		ConstraintName: sqlerr.ExerciseUserFKConstraint,
	})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 404 {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
	if httpErr.Message != "_id does not exist" {
		t.Fatalf("expected %q, got %q", "_id does not exist", httpErr.Message)
	}
}

func TestHandleErrorGenericUniqueViolation(t *testing.T) {
	err := sqlerr.HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "teams",
		ConstraintName: "teams_name_key",
	})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}
	if httpErr.Code != "TEAM_ALREADY_EXISTS" {
		t.Fatalf("expected code TEAM_ALREADY_EXISTS, got %q", httpErr.Code)
	}
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := sqlerr.HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "exercises",
		ColumnName: "description",
	})

	httpErr := asHTTPError(t, err)
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "description" {
		t.Fatalf("expected a field error for description, got %+v", httpErr.Errors)
	}
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, sqlerr.HandleError(pgx.ErrNoRows))
	if httpErr.Status != 404 {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, sqlerr.HandleError(errors.New("connection reset")))
	if httpErr.Status != 500 {
		t.Fatalf("expected status 500, got %d", httpErr.Status)
	}
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	original := errs.NewNotFoundError("_id does not exist", true, nil)

	if got := sqlerr.HandleError(original); got != error(original) {
		t.Fatalf("expected the original error back, got %v", got)
	}
}

func TestErrCodeWalksWrappedErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	wrapped := fmt.Errorf("inserting user: %w", pgErr)

	if code := sqlerr.ErrCode(wrapped); code != sqlerr.UniqueViolation {
		t.Fatalf("expected UniqueViolation, got %v", code)
	}
	if code := sqlerr.ErrCode(errors.New("plain")); code != sqlerr.Other {
		t.Fatalf("expected Other, got %v", code)
	}
}

func TestMapCode(t *testing.T) {
	cases := map[string]sqlerr.Code{
		"23505": sqlerr.UniqueViolation,
		"23503": sqlerr.ForeignKeyViolation,
		"23502": sqlerr.NotNullViolation,
		"23514": sqlerr.CheckViolation,
		"42P01": sqlerr.Other,
	}

	for sqlstate, want := range cases {
		if got := sqlerr.MapCode(sqlstate); got != want {
			t.Fatalf("MapCode(%q) = %v, want %v", sqlstate, got, want)
		}
	}
}
