package middleware

import (
	"fmt"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/errs"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware enforces a per-IP request budget using a Redis
// fixed-window counter.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the enforcement middleware. A zero configured budget
// disables limiting entirely. Redis failures fail open: an unreachable
// counter store should degrade throttling, not availability.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	budget := r.server.Config.Server.RateLimitPerMinute

	if budget <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), window)

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Debug().Err(err).Msg("rate limit counter unavailable, failing open")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, time.Minute)
			}

			if count > int64(budget) {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError("Too many requests, slow down")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit emits a New Relic custom event for a throttled
// request, when the agent is configured.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
