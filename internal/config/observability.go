package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ObservabilityConfig groups configuration related to telemetry:
// structured logging settings and the optional New Relic agent.
//
// It is optional at the root level (pointer in Config). When omitted,
// DefaultObservabilityConfig is injected.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs and traces.
	// Forced in Load so it cannot be configured into chaos.
	ServiceName string `koanf:"service_name"`

	// Environment labels telemetry by environment (local, production, ...).
	Environment string `koanf:"environment"`

	// Logging controls structured logger behavior.
	Logging LoggingConfig `koanf:"logging"`

	// NewRelic controls APM and tracing features.
	NewRelic NewRelicConfig `koanf:"new_relic"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format selects the log output format: "json" or "console".
	Format string `koanf:"format"`

	// SlowQueryThreshold flags queries slower than this duration.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
// An empty LicenseKey means "not configured" and disables the agent.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// DefaultObservabilityConfig provides a safe set of defaults for when
// Config.Observability is not supplied via env.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: "exercise-tracker",
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},
	}
}

// Validate checks the observability block beyond what struct tags can
// express: the log level must parse and the format must be known.
func (o *ObservabilityConfig) Validate() error {
	if _, err := zerolog.ParseLevel(o.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.Logging.Level, err)
	}

	switch o.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q, expected json or console", o.Logging.Format)
	}

	return nil
}
