package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type fakeUserStore struct {
	users     []models.User
	inserted  []string
	insertErr error
	getCalls  int
	getErr    error
	listErr   error
}

func (f *fakeUserStore) Insert(_ context.Context, username string) (models.User, error) {
	f.inserted = append(f.inserted, username)
	if f.insertErr != nil {
		return models.User{}, f.insertErr
	}

	user := models.User{ID: uuid.New(), Username: username}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	f.getCalls++
	if f.getErr != nil {
		return models.User{}, f.getErr
	}

	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, pgx.ErrNoRows
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func nopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestCreateUserReturnsSummary(t *testing.T) {
	store := &fakeUserStore{}
	svc := service.NewUserService(nopLogger(), store)

	summary, err := svc.Create(context.Background(), "  johndoe  ")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	if summary.Username != "johndoe" {
		t.Fatalf("expected trimmed username %q, got %q", "johndoe", summary.Username)
	}
	if summary.ID == uuid.Nil {
		t.Fatalf("expected created user to have an id")
	}
	if len(store.inserted) != 1 || store.inserted[0] != "johndoe" {
		t.Fatalf("expected store insert with trimmed username, got %v", store.inserted)
	}
}

func TestCreateUserRejectsEmptyUsername(t *testing.T) {
	for _, username := range []string{"", "   ", "\t\n"} {
		store := &fakeUserStore{}
		svc := service.NewUserService(nopLogger(), store)

		_, err := svc.Create(context.Background(), username)

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected HTTPError for username %q, got %v", username, err)
		}
		if httpErr.Status != 400 {
			t.Fatalf("expected status 400, got %d", httpErr.Status)
		}
		if httpErr.Message != "Please enter username" {
			t.Fatalf("expected %q, got %q", "Please enter username", httpErr.Message)
		}
		if len(store.inserted) != 0 {
			t.Fatalf("expected no insert for empty username")
		}
	}
}

func TestCreateUserDuplicateConflicts(t *testing.T) {
	store := &fakeUserStore{
		insertErr: &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "users_username_key",
			TableName:      "users",
		},
	}
	svc := service.NewUserService(nopLogger(), store)

	_, err := svc.Create(context.Background(), "johndoe")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
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

func TestListUsersIsNeverNil(t *testing.T) {
	svc := service.NewUserService(nopLogger(), &fakeUserStore{})

	summaries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if summaries == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no users, got %d", len(summaries))
	}
}

func TestListUsersPreservesStorageOrder(t *testing.T) {
	store := &fakeUserStore{}
	svc := service.NewUserService(nopLogger(), store)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Create(context.Background(), name); err != nil {
			t.Fatalf("create %q returned error: %v", name, err)
		}
	}

	summaries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 users, got %d", len(summaries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if summaries[i].Username != want {
			t.Fatalf("expected user %d to be %q, got %q", i, want, summaries[i].Username)
		}
	}
}
