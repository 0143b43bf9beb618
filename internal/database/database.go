// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool)
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/config"
	loggerConfig "github.com/fitkeep/exercise-tracker/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer chains multiple pgx tracers into the single Tracer slot
// on ConnConfig, so New Relic tracing and local SQL logging can coexist.
type multiTracer struct {
	tracers []any
}

// TraceQueryStart implements the pgx tracer interface. It threads the
// context through every chained tracer that supports query tracing.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

// TraceQueryEnd implements the pgx tracer interface.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for a ping
// before considering the database unreachable.
const DatabasePingTimeout = 10

// buildDSN assembles a postgres:// connection string from config,
// URL-escaping the password so it cannot break the URL structure.
func buildDSN(cfg *config.Config) string {
	hostPort := net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port))
	encodedPassword := url.QueryEscape(cfg.Database.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Database.User,
		encodedPassword,
		hostPort,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation.
//
// Behavior:
//   - Parse DSN into pgxpool config and apply pool tuning
//   - Attach New Relic tracer if available
//   - In local env: attach SQL tracelogger (chained if both exist)
//   - Create pool, ping it, and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService != nil && loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// Local env gets SQL query logging via pgx tracelog + zerolog.
	// Too noisy for anything else.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return database, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
