// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/fitkeep/exercise-tracker/internal/handler"
	"github.com/fitkeep/exercise-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance: global middleware chain, the error
// funnel, and every route group.
//
// Middleware order matters:
//  1. New Relic transaction (so everything downstream can trace)
//  2. RequestID (correlation id before any logging)
//  3. ContextEnhancer (request-scoped logger needs the id)
//  4. RequestLogger / Recover / Secure / CORS
//  5. RateLimit (after logging so throttled requests still show up)
func New(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(middleware.RequestID())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Tracing.EnhanceTracing())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())
	r.Use(m.Global.Secure())
	r.Use(m.Global.CORS())
	r.Use(m.RateLimit.Limit())

	registerSystemRoutes(r, h)
	registerUserRoutes(r, h)

	return r
}

// registerUserRoutes maps the /api/users surface: the user directory
// plus the per-user exercise log.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api")

	users := api.Group("/users")

	users.POST("", handler.Handle(h.Users.Handler, h.Users.Create, http.StatusCreated, &handler.CreateUserRequest{}))
	users.GET("", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK, &handler.ListUsersRequest{}))

	users.POST("/:_id/exercises", handler.Handle(h.Exercises.Handler, h.Exercises.Append, http.StatusCreated, &handler.AppendExerciseRequest{}))
	users.GET("/:_id/logs", handler.Handle(h.Exercises.Handler, h.Exercises.Log, http.StatusOK, &handler.GetLogRequest{}))
}
