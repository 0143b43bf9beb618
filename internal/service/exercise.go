package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DateParamLayout is the format of from/to/date parameters on the wire.
const DateParamLayout = "2006-01-02"

// ExerciseStore is the storage capability the exercise service needs.
// *repository.ExerciseRepository satisfies it.
type ExerciseStore interface {
	Insert(ctx context.Context, userID uuid.UUID, description string, duration int, date time.Time) (models.Exercise, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]models.Exercise, error)
}

// RecountEnqueuer schedules background recomputation of a user's
// stored exercise count. *job.JobService satisfies it.
type RecountEnqueuer interface {
	EnqueueUserRecount(ctx context.Context, userID uuid.UUID) error
}

// ExerciseResult is the payload returned after appending an exercise:
// the owning user's identity with the new entry's fields.
type ExerciseResult struct {
	ID          uuid.UUID `json:"_id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        string    `json:"date"`
}

// LogEntry is one rendered exercise inside a log view.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is a filtered view of a user's exercise log. Count is the
// number of entries in the returned (filtered, truncated) log, not the
// total stored.
type LogResult struct {
	ID       uuid.UUID  `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ExerciseService implements the exercise log: appending entries to a
// user's log and producing filtered views of it.
type ExerciseService struct {
	logger    *zerolog.Logger
	users     UserStore
	exercises ExerciseStore
	jobs      RecountEnqueuer
}

// NewExerciseService constructs an ExerciseService. jobs may be nil,
// in which case count recomputation is skipped.
func NewExerciseService(logger *zerolog.Logger, users UserStore, exercises ExerciseStore, jobs RecountEnqueuer) *ExerciseService {
	return &ExerciseService{
		logger:    logger,
		users:     users,
		exercises: exercises,
		jobs:      jobs,
	}
}

// userNotFound is the contract payload for any id that does not
// resolve to a user, including ids that are not well-formed: an opaque
// id that cannot exist in storage is indistinguishable from one that
// does not.
func userNotFound() *errs.HTTPError {
	code := "USER_NOT_FOUND"
	return errs.NewNotFoundError("_id does not exist", true, &code)
}

// resolveUser parses the raw id and loads the user behind it.
func (s *ExerciseService) resolveUser(ctx context.Context, rawID string) (models.User, error) {
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.User{}, userNotFound()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, userNotFound()
		}
		return models.User{}, err
	}

	return user, nil
}

// Append logs one exercise against a user.
//
// The date defaults to "now" when absent; otherwise it must be a
// YYYY-MM-DD calendar date. The returned date is rendered in the API's
// human-readable format. After a successful write, a count recount is
// scheduled in the background; failure to enqueue never fails the
// append.
func (s *ExerciseService) Append(ctx context.Context, rawID, description string, duration int, date string) (ExerciseResult, error) {
	user, err := s.resolveUser(ctx, rawID)
	if err != nil {
		return ExerciseResult{}, err
	}

	when := time.Now()
	if date != "" {
		when, err = time.Parse(DateParamLayout, date)
		if err != nil {
			return ExerciseResult{}, errs.NewBadRequestError("date must be in YYYY-MM-DD format", true, nil, nil)
		}
	}

	exercise, err := s.exercises.Insert(ctx, user.ID, description, duration, when)
	if err != nil {
		return ExerciseResult{}, err
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueUserRecount(ctx, user.ID); err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", user.ID.String()).
				Msg("failed to enqueue exercise recount")
		}
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Int("duration", exercise.Duration).
		Msg("exercise appended")

	return ExerciseResult{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.FormatDate(),
	}, nil
}

// Log returns the user's exercise log filtered by the inclusive
// [from, to] date window and truncated to at most limit entries.
//
// Filtering is applied before truncation and order is preserved.
// Absent bounds apply no bound on that side; limit <= 0 means no
// truncation. An empty filtered log is a valid result, not an error.
func (s *ExerciseService) Log(ctx context.Context, rawID, from, to string, limit int) (LogResult, error) {
	user, err := s.resolveUser(ctx, rawID)
	if err != nil {
		return LogResult{}, err
	}

	window := [2]*time.Time{}
	for i, raw := range []string{from, to} {
		if raw == "" {
			continue
		}
		bound, err := time.Parse(DateParamLayout, raw)
		if err != nil {
			return LogResult{}, errs.NewBadRequestError("from and to must be in YYYY-MM-DD format", true, nil, nil)
		}
		window[i] = &bound
	}

	exercises, err := s.exercises.ListByUser(ctx, user.ID, window[0], window[1], limit)
	if err != nil {
		return LogResult{}, err
	}

	entries := make([]LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		entries = append(entries, LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.FormatDate(),
		})
	}

	return LogResult{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}, nil
}
