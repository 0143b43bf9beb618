// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"reflect"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/middleware"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/fitkeep/exercise-tracker/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it to reach the server
// container (config, logger, db, redis).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only holds a pointer, so copies still point at the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc represents a typed endpoint function that receives a
// bound-and-validated request payload and returns a response or an
// error. Req is always a pointer type so echo's Bind can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle wraps a typed handler with binding, validation, error
// handling, logging, metrics, and tracing, and returns an
// echo.HandlerFunc ready to register on a route.
//
// reqProto is only a template describing the payload type: a fresh
// instance is allocated per request, so concurrent requests never
// share a payload.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	reqProto Req,
) echo.HandlerFunc {
	reqType := reflect.TypeOf(reqProto).Elem()

	return func(c echo.Context) error {
		req := reflect.New(reqType).Interface().(Req)

		return handleRequest(c, req, func(c echo.Context) (any, error) {
			return handler(c, req)
		}, status)
	}
}

// handleRequest is the shared execution pipeline for all handlers.
// It centralizes:
//
//   - request binding + validation
//   - structured logging (with request context)
//   - New Relic tracing attributes and error reporting
//   - timing (validation duration, handler duration, total duration)
//   - JSON response writing
func handleRequest(
	c echo.Context,
	req validation.Validatable,
	handler func(c echo.Context) (any, error),
	status int,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	// The transaction is set by the New Relic Echo middleware (nrecho).
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	// Request-scoped logger from the ContextEnhancer middleware,
	// already carrying request_id and trace correlation fields.
	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		// The global error handler formats the response.
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return c.JSON(status, result)
}
