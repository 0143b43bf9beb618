// Package config manages environment variables.
//
// It reads variables from the `.env` file,
// loads them into structured Go types (structs), and
// validates that required values are present so they
// can be reused across the application runtime.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process
	// environment before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Env vars are read with the FITKEEP_ prefix and mapped to nested
// fields via "." delimited keys, e.g. FITKEEP_SERVER.PORT -> server.port.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimitPerMinute caps requests per client IP per minute.
	// Zero disables rate limiting.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
// Redis backs the rate limiter and the background job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies observability defaults.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	err := k.Load(env.Provider("FITKEEP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FITKEEP_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are fixed here so logs and traces
	// carry consistent naming regardless of what the env provides.
	mainConfig.Observability.ServiceName = "exercise-tracker"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
