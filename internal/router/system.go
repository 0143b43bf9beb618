package router

import (
	"github.com/fitkeep/exercise-tracker/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers "system" endpoints that are not part
// of business logic:
//  1. Health endpoint
//  2. Hello smoke-test endpoint
//  3. Landing page + static assets
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// Plain-text liveness probe kept for parity with the original API.
	r.GET("/hello", h.Health.Hello)

	// Landing page with the test form.
	r.GET("/", h.Static.ServeIndex)

	// Serve all files from ./static at /static/* (styles for the
	// landing page and any future assets).
	r.Static("/static", "static")
}
