package middleware

import (
	"context"

	"github.com/fitkeep/exercise-tracker/internal/logger"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the key for storing the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer enriches each request with a request-scoped logger
// carrying request_id, method, path, ip, and trace ids when a New
// Relic transaction exists. The logger is stored both in Echo context
// and in the Go request context so non-Echo code can reach it.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a ContextEnhancer using the app container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns the Echo middleware. It must run after the
// RequestID middleware so the correlation ID is available.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger) //nolint:staticcheck // string key shared with Echo context
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetLogger retrieves the request-scoped logger from Echo context.
// If EnhanceContext didn't run, it returns a no-op logger rather than
// crashing.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
