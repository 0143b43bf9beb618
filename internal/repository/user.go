package repository

import (
	"context"

	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists and looks up users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository over the shared pool.
func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{pool: s.DB.Pool}
}

// Insert creates a user with an empty log.
//
// Uniqueness is enforced by the users_username_key constraint in a
// single statement, so two concurrent inserts of the same username
// cannot both succeed; the loser gets a unique-violation error.
func (r *UserRepository) Insert(ctx context.Context, username string) (models.User, error) {
	const q = `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING id, username, exercise_count, created_at`

	var user models.User
	err := r.pool.QueryRow(ctx, q, username).
		Scan(&user.ID, &user.Username, &user.ExerciseCount, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// GetByID fetches a user by id. Returns pgx.ErrNoRows when absent.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	const q = `
		SELECT id, username, exercise_count, created_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&user.ID, &user.Username, &user.ExerciseCount, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// List returns all users in creation order. The id tiebreak keeps the
// order stable across calls for rows created in the same instant.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const q = `
		SELECT id, username, exercise_count, created_at
		FROM users
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.ExerciseCount, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// RecountExercises recomputes the denormalized exercise_count column
// for a user from the exercises actually stored. Run by the background
// recount job, never on the request path.
func (r *UserRepository) RecountExercises(ctx context.Context, userID uuid.UUID) error {
	const q = `
		UPDATE users
		SET exercise_count = (
			SELECT count(*) FROM exercises WHERE user_id = $1
		)
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, q, userID)
	return err
}
