package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/service"
	"github.com/google/uuid"
)

type fakeExerciseStore struct {
	insertErr error
	inserted  []models.Exercise

	exercises []models.Exercise
	listErr   error
	listFrom  *time.Time
	listTo    *time.Time
	listLimit int
}

func (f *fakeExerciseStore) Insert(_ context.Context, userID uuid.UUID, description string, duration int, date time.Time) (models.Exercise, error) {
	if f.insertErr != nil {
		return models.Exercise{}, f.insertErr
	}

	exercise := models.Exercise{
		ID:          int64(len(f.inserted) + 1),
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	f.inserted = append(f.inserted, exercise)
	return exercise, nil
}

func (f *fakeExerciseStore) ListByUser(_ context.Context, _ uuid.UUID, from, to *time.Time, limit int) ([]models.Exercise, error) {
	f.listFrom = from
	f.listTo = to
	f.listLimit = limit

	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.exercises, nil
}

type fakeEnqueuer struct {
	err   error
	calls []uuid.UUID
}

func (f *fakeEnqueuer) EnqueueUserRecount(_ context.Context, userID uuid.UUID) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func seedUser(t *testing.T, users *fakeUserStore, username string) models.User {
	t.Helper()

	user, err := users.Insert(context.Background(), username)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestAppendDefaultsDateToNow(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	user := seedUser(t, users, "runner")

	result, err := svc.Append(context.Background(), user.ID.String(), "morning run", 30, "")
	if err != nil {
		t.Fatalf("append returned error: %v", err)
	}

	if len(exercises.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(exercises.inserted))
	}

	stored := exercises.inserted[0]
	if time.Since(stored.Date) > time.Minute {
		t.Fatalf("expected date to default to now, got %v", stored.Date)
	}
	if result.Date != stored.Date.Format(models.DateLayout) {
		t.Fatalf("expected rendered date %q, got %q", stored.Date.Format(models.DateLayout), result.Date)
	}
}

func TestAppendRendersCalendarDate(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	user := seedUser(t, users, "runner")

	result, err := svc.Append(context.Background(), user.ID.String(), "long ride", 90, "2024-03-05")
	if err != nil {
		t.Fatalf("append returned error: %v", err)
	}

	if result.Date != "Tue Mar 05 2024" {
		t.Fatalf("expected date %q, got %q", "Tue Mar 05 2024", result.Date)
	}
	if result.ID != user.ID {
		t.Fatalf("expected result to carry user id %v, got %v", user.ID, result.ID)
	}
	if result.Username != "runner" {
		t.Fatalf("expected username %q, got %q", "runner", result.Username)
	}
	if result.Duration != 90 {
		t.Fatalf("expected duration 90, got %d", result.Duration)
	}
}

func TestAppendRejectsMalformedDate(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	user := seedUser(t, users, "runner")

	for _, date := range []string{"05-03-2024", "2024-13-40", "yesterday"} {
		_, err := svc.Append(context.Background(), user.ID.String(), "run", 30, date)

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected HTTPError for date %q, got %v", date, err)
		}
		if httpErr.Status != 400 {
			t.Fatalf("expected status 400 for date %q, got %d", date, httpErr.Status)
		}
	}

	if len(exercises.inserted) != 0 {
		t.Fatalf("expected no insert for malformed dates")
	}
}

func TestAppendUnknownUserNotFound(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	_, err := svc.Append(context.Background(), uuid.New().String(), "run", 30, "")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != 404 {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
	if httpErr.Message != "_id does not exist" {
		t.Fatalf("expected %q, got %q", "_id does not exist", httpErr.Message)
	}
}

func TestAppendMalformedIDIsNotFound(t *testing.T) {
	users := &fakeUserStore{}
	svc := service.NewExerciseService(nopLogger(), users, &fakeExerciseStore{}, nil)

	_, err := svc.Append(context.Background(), "not-a-uuid", "run", 30, "")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != 404 {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
	if users.getCalls != 0 {
		t.Fatalf("expected no store lookup for a malformed id")
	}
}

func TestAppendSchedulesRecount(t *testing.T) {
	users := &fakeUserStore{}
	enqueuer := &fakeEnqueuer{}
	svc := service.NewExerciseService(nopLogger(), users, &fakeExerciseStore{}, enqueuer)

	user := seedUser(t, users, "runner")

	if _, err := svc.Append(context.Background(), user.ID.String(), "run", 30, ""); err != nil {
		t.Fatalf("append returned error: %v", err)
	}

	if len(enqueuer.calls) != 1 || enqueuer.calls[0] != user.ID {
		t.Fatalf("expected one recount enqueue for %v, got %v", user.ID, enqueuer.calls)
	}
}

func TestAppendSurvivesEnqueueFailure(t *testing.T) {
	users := &fakeUserStore{}
	enqueuer := &fakeEnqueuer{err: errors.New("redis unreachable")}
	svc := service.NewExerciseService(nopLogger(), users, &fakeExerciseStore{}, enqueuer)

	user := seedUser(t, users, "runner")

	if _, err := svc.Append(context.Background(), user.ID.String(), "run", 30, ""); err != nil {
		t.Fatalf("expected append to succeed despite enqueue failure, got %v", err)
	}
}

func TestLogForwardsWindowAndLimit(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	user := seedUser(t, users, "runner")

	if _, err := svc.Log(context.Background(), user.ID.String(), "2024-01-01", "2024-01-31", 5); err != nil {
		t.Fatalf("log returned error: %v", err)
	}

	if exercises.listFrom == nil || !exercises.listFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected from bound 2024-01-01, got %v", exercises.listFrom)
	}
	if exercises.listTo == nil || !exercises.listTo.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected to bound 2024-01-31, got %v", exercises.listTo)
	}
	if exercises.listLimit != 5 {
		t.Fatalf("expected limit 5, got %d", exercises.listLimit)
	}
}

func TestLogOmittedFiltersAreUnbounded(t *testing.T) {
	users := &fakeUserStore{}
	exercises := &fakeExerciseStore{}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	user := seedUser(t, users, "runner")

	if _, err := svc.Log(context.Background(), user.ID.String(), "", "", 0); err != nil {
		t.Fatalf("log returned error: %v", err)
	}

	if exercises.listFrom != nil || exercises.listTo != nil {
		t.Fatalf("expected no date bounds, got from=%v to=%v", exercises.listFrom, exercises.listTo)
	}
	if exercises.listLimit != 0 {
		t.Fatalf("expected no limit, got %d", exercises.listLimit)
	}
}

func TestLogCountMatchesReturnedEntries(t *testing.T) {
	users := &fakeUserStore{}
	user := seedUser(t, users, "runner")

	exercises := &fakeExerciseStore{
		exercises: []models.Exercise{
			{UserID: user.ID, Description: "run", Duration: 30, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			{UserID: user.ID, Description: "swim", Duration: 45, Date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := service.NewExerciseService(nopLogger(), users, exercises, nil)

	result, err := svc.Log(context.Background(), user.ID.String(), "", "", 0)
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("expected count 2, got %d", result.Count)
	}
	if len(result.Log) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Log))
	}
	if result.Log[0].Description != "run" || result.Log[1].Description != "swim" {
		t.Fatalf("expected entries in storage order, got %+v", result.Log)
	}
	if result.Log[0].Date != "Tue Mar 05 2024" {
		t.Fatalf("expected rendered date %q, got %q", "Tue Mar 05 2024", result.Log[0].Date)
	}
}

func TestLogEmptyIsNotAnError(t *testing.T) {
	users := &fakeUserStore{}
	svc := service.NewExerciseService(nopLogger(), users, &fakeExerciseStore{}, nil)

	user := seedUser(t, users, "runner")

	result, err := svc.Log(context.Background(), user.ID.String(), "", "", 0)
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}
	if result.Log == nil {
		t.Fatalf("expected empty log slice, got nil")
	}
	if result.Count != 0 {
		t.Fatalf("expected count 0, got %d", result.Count)
	}
}

func TestLogRejectsMalformedWindow(t *testing.T) {
	users := &fakeUserStore{}
	svc := service.NewExerciseService(nopLogger(), users, &fakeExerciseStore{}, nil)

	user := seedUser(t, users, "runner")

	_, err := svc.Log(context.Background(), user.ID.String(), "March 1", "", 0)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != 400 {
		t.Fatalf("expected status 400, got %d", httpErr.Status)
	}
}

func TestLogUnknownUserNotFound(t *testing.T) {
	svc := service.NewExerciseService(nopLogger(), &fakeUserStore{}, &fakeExerciseStore{}, nil)

	_, err := svc.Log(context.Background(), uuid.New().String(), "", "", 0)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != 404 {
		t.Fatalf("expected status 404, got %d", httpErr.Status)
	}
	if httpErr.Message != "_id does not exist" {
		t.Fatalf("expected %q, got %q", "_id does not exist", httpErr.Message)
	}
}
