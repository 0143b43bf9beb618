package handler

import (
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/fitkeep/exercise-tracker/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate runs struct-tag validation for request payloads.
var validate = validator.New()

// ExerciseHandler exposes the exercise log endpoints.
type ExerciseHandler struct {
	Handler
	exercises *service.ExerciseService
}

// NewExerciseHandler constructs an ExerciseHandler.
func NewExerciseHandler(s *server.Server, exercises *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		Handler: NewHandler(s),
		exercises: exercises,
	}
}

// AppendExerciseRequest is the POST /api/users/:_id/exercises payload.
//
// Duration is bound as an integer, so a non-numeric value is rejected
// at bind time instead of being silently coerced. Date is optional and
// defaults to "now" in the service.
type AppendExerciseRequest struct {
	UserID      string `param:"_id"`
	Description string `form:"description" json:"description" validate:"required"`
	Duration    int    `form:"duration" json:"duration" validate:"required,min=1"`
	Date        string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *AppendExerciseRequest) Validate() error {
	return validate.Struct(r)
}

// Append logs one exercise against a user.
func (h *ExerciseHandler) Append(c echo.Context, req *AppendExerciseRequest) (service.ExerciseResult, error) {
	return h.exercises.Append(c.Request().Context(), req.UserID, req.Description, req.Duration, req.Date)
}

// GetLogRequest is the GET /api/users/:_id/logs payload. All filters
// are optional: from/to bound the date window inclusively, limit
// truncates the filtered log.
type GetLogRequest struct {
	UserID string `param:"_id"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit  int    `query:"limit" validate:"omitempty,min=1"`
}

func (r *GetLogRequest) Validate() error {
	return validate.Struct(r)
}

// Log returns the user's filtered exercise log with its count.
func (h *ExerciseHandler) Log(c echo.Context, req *GetLogRequest) (service.LogResult, error) {
	return h.exercises.Log(c.Request().Context(), req.UserID, req.From, req.To, req.Limit)
}
