package service

import (
	"context"
	"strings"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserStore is the storage capability the user service needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Insert(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserService implements the user directory: creating users and
// listing them, with username uniqueness delegated to the storage
// constraint.
type UserService struct {
	logger *zerolog.Logger
	store  UserStore
}

// NewUserService constructs a UserService.
func NewUserService(logger *zerolog.Logger, store UserStore) *UserService {
	return &UserService{
		logger: logger,
		store:  store,
	}
}

// Create registers a new user and returns its `{_id, username}` summary.
//
// An empty username is rejected with the contract's validation payload.
// A taken username surfaces as a conflict: the insert and the
// uniqueness check are a single statement against the unique
// constraint, so concurrent creates of the same name cannot both win.
func (s *UserService) Create(ctx context.Context, username string) (models.UserSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.UserSummary{}, errs.NewBadRequestError("Please enter username", true, nil, nil)
	}

	user, err := s.store.Insert(ctx, username)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			code := "USERNAME_TAKEN"
			return models.UserSummary{}, errs.NewConflictError("Username already taken", &code)
		}
		return models.UserSummary{}, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user created")

	return user.Summary(), nil
}

// List returns all users as `{_id, username}` summaries in storage
// order. The slice is never nil so the endpoint serializes as [].
func (s *UserService) List(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}

	return summaries, nil
}
