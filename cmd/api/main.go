// The api binary runs the exercise tracker HTTP API.
//
// Startup order: config -> logging/agent -> migrations -> server
// container -> repositories -> job workers -> services -> handlers ->
// router -> HTTP. Shutdown drains in-flight requests before closing
// the worker, redis, database, and the agent.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/config"
	"github.com/fitkeep/exercise-tracker/internal/database"
	"github.com/fitkeep/exercise-tracker/internal/handler"
	"github.com/fitkeep/exercise-tracker/internal/logger"
	"github.com/fitkeep/exercise-tracker/internal/middleware"
	"github.com/fitkeep/exercise-tracker/internal/repository"
	"github.com/fitkeep/exercise-tracker/internal/router"
	"github.com/fitkeep/exercise-tracker/internal/server"
	"github.com/fitkeep/exercise-tracker/internal/service"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to initialize logger service")
	}

	log := logger.New(cfg, loggerService)

	ctx := context.Background()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to run database migrations")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	// Workers need the user repository for recount tasks, so they start
	// only after the repositories exist.
	if err := s.Job.Start(repos.Users); err != nil {
		log.Error().Err(err).Msg("failed to start job workers, continuing without background jobs")
	}

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	r := router.New(handlers, middlewares)

	s.SetupHTTPServer(r)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	log.Info().Msg("server stopped")
}
