// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fitkeep/exercise-tracker/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is not configured (empty license key), the service
// still exists but GetApplication returns nil. Callers are expected
// to nil-check before instrumenting.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes the New Relic agent if a license key is
// configured. Without a key it returns a service with a nil application,
// which downgrades all instrumentation into no-ops.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	if cfg.Observability.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
	}

	if cfg.Observability.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	nrApp, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing new relic application: %w", err)
	}

	return &LoggerService{nrApp: nrApp}, nil
}

// GetApplication returns the New Relic application, or nil when the
// agent is not configured.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes and stops the New Relic agent, waiting up to the
// given timeout. Safe to call when the agent is not configured.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls == nil || ls.nrApp == nil {
		return
	}
	ls.nrApp.Shutdown(timeout)
}

// New builds the application's main structured logger from config.
//
// Format "console" produces human-friendly output for local work;
// "json" is the default for deployed environments. When New Relic log
// forwarding is enabled, log lines are decorated with linking metadata
// on their way out.
func New(cfg *config.Config, loggerService *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	if nrApp := loggerService.GetApplication(); nrApp != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		out = zerologWriter.New(out, nrApp)
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext returns a child logger carrying the New Relic trace
// and span ids of the given transaction, so log lines can be correlated
// with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger builds a logger dedicated to pgx query tracing output.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto the pgx tracelog scale.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
