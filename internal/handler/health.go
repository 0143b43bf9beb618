package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/middleware"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a system endpoint that external systems can
// use to verify the service is alive and dependencies are reachable.
// Embedding the base Handler keeps handler patterns consistent even
// though this is not business logic.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns 200 OK if the database is reachable and 503 otherwise.
// Redis unhealthiness is reported but does not fail the check: the
// rate limiter fails open and recounts are retried by the queue.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]any),
	}

	checks := response["checks"].(map[string]any)
	isHealthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordHealthCheckError("database", err)
	} else {
		checks["database"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	redisStart := time.Now()
	if err := h.server.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(redisStart).String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(redisStart)).
			Msg("redis health check failed")

		h.recordHealthCheckError("redis", err)
	} else {
		checks["redis"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(redisStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// Hello is the smoke endpoint the original API shipped with.
func (h *HealthHandler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, "hello there")
}

// recordHealthCheckError emits a New Relic custom event for a failed
// dependency check, when the agent is configured.
func (h *HealthHandler) recordHealthCheckError(checkType string, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent(
		"HealthCheckError",
		map[string]any{
			"check_type":    checkType,
			"operation":     "health_check",
			"error_message": err.Error(),
		},
	)
}
