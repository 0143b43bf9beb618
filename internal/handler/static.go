package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticHandler serves the landing page that documents the API and
// hosts the test form, mirroring the index page the original app
// served from its views directory.
type StaticHandler struct {
	Handler
}

// NewStaticHandler constructs a StaticHandler.
func NewStaticHandler(s *server.Server) *StaticHandler {
	return &StaticHandler{
		Handler: NewHandler(s),
	}
}

// ServeIndex reads static/index.html and serves it as HTML.
// Caching is disabled so edits show up immediately during development.
func (h *StaticHandler) ServeIndex(c echo.Context) error {
	templateBytes, err := os.ReadFile("static/index.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read index template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
