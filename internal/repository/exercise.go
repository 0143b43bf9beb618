package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExerciseRepository persists and queries exercise log entries.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository over the
// shared pool.
func NewExerciseRepository(s *server.Server) *ExerciseRepository {
	return &ExerciseRepository{pool: s.DB.Pool}
}

// Insert appends one exercise to a user's log. The date is stored at
// calendar-day precision.
func (r *ExerciseRepository) Insert(ctx context.Context, userID uuid.UUID, description string, duration int, date time.Time) (models.Exercise, error) {
	const q = `
		INSERT INTO exercises (user_id, description, duration, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, description, duration, date, created_at`

	var exercise models.Exercise
	err := r.pool.QueryRow(ctx, q, userID, description, duration, date).
		Scan(&exercise.ID, &exercise.UserID, &exercise.Description,
			&exercise.Duration, &exercise.Date, &exercise.CreatedAt)
	if err != nil {
		return models.Exercise{}, err
	}

	return exercise, nil
}

// ListByUser returns a user's exercises in insertion order, optionally
// bounded by an inclusive [from, to] date window and truncated to at
// most limit rows.
//
// Filtering happens before truncation: the WHERE clause narrows the
// window, then LIMIT takes the first rows of the filtered, ordered set.
// A nil bound means "no bound on that side"; limit <= 0 means no limit.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time, limit int) ([]models.Exercise, error) {
	var q strings.Builder
	q.WriteString(`
		SELECT id, user_id, description, duration, date, created_at
		FROM exercises
		WHERE user_id = $1`)

	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		q.WriteString(" AND date >= $" + strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		q.WriteString(" AND date <= $" + strconv.Itoa(len(args)))
	}

	q.WriteString(" ORDER BY id")

	if limit > 0 {
		args = append(args, limit)
		q.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	rows, err := r.pool.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description,
			&exercise.Duration, &exercise.Date, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}

	return exercises, rows.Err()
}
