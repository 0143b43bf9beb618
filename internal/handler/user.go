package handler

import (
	"github.com/fitkeep/exercise-tracker/internal/models"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/fitkeep/exercise-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler exposes the user directory endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// CreateUserRequest is the POST /api/users payload. The username may
// arrive as form data (the original client) or JSON.
//
// Requiredness is checked in the service so the contract's exact
// "Please enter username" payload is produced there.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

func (r *CreateUserRequest) Validate() error {
	return nil
}

// Create registers a new user.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (models.UserSummary, error) {
	return h.users.Create(c.Request().Context(), req.Username)
}

// ListUsersRequest is the (empty) GET /api/users payload.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

// List returns all users as `{_id, username}` summaries.
func (h *UserHandler) List(c echo.Context, _ *ListUsersRequest) ([]models.UserSummary, error) {
	return h.users.List(c.Request().Context())
}
