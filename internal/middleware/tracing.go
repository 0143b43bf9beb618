package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fitkeep/exercise-tracker/internal/server"
)

// TracingMiddleware owns the New Relic related Echo middleware.
//
// Two layers:
//  1. NewRelicMiddleware() installs transaction handling into Echo
//  2. EnhanceTracing() adds custom attributes and notices errors
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware. nrApp may be nil
// when the agent is not configured.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns the New Relic Echo middleware, or a
// pass-through when the agent is disabled. This is what makes
// newrelic.FromContext(...) work downstream.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds custom attributes to New Relic transactions:
// client IP, user agent, request id, and the final status code. It
// assumes NewRelicMiddleware already ran so a transaction exists.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}

			err := next(c)

			// Errors still propagate to the global error handler;
			// notice them here so traces carry stack information.
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
