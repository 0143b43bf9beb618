// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker server (asynq)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the
// application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/config"
	"github.com/fitkeep/exercise-tracker/internal/database"
	"github.com/fitkeep/exercise-tracker/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/fitkeep/exercise-tracker/internal/logger"
)

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Redis backs the rate limiter and the job queue health check.
	Redis *redis.Client

	// Job runs background workers (Asynq) and provides a client for
	// enqueueing. Handlers are registered and the worker started from
	// main, after the repositories exist.
	Job *job.JobService

	// httpServer is the standard library HTTP server instance.
	// Configured in SetupHTTPServer and started in Start.
	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server or the job worker; those are
// started explicitly once routing and job handlers are wired.
//
// Notes:
//   - Redis connection failure does not block startup (logged, the
//     rate limiter fails open and recount jobs are skipped).
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	// Instrument Redis commands when New Relic is enabled so they show
	// up in distributed traces.
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server.
// The router is passed in as an http.Handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Timeouts protect against slow clients. Config stores seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It requires SetupHTTPServer to be called
// first and blocks until the server stops or errors.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies:
// stop accepting HTTP requests (finish inflight until ctx deadline),
// stop the job worker, close redis and the DB pool, flush the agent.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown(10 * time.Second)

	return nil
}
