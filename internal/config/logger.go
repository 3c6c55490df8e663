package config

import (
	"fmt"
	"slices"
	"time"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
	// SlowQueryThreshold marks store statements logged as slow; zero disables slow query logging.
	SlowQueryThreshold time.Duration
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:              GetEnv("LOG_LEVEL", "info"),
		Format:             GetEnv("LOG_FORMAT", "json"),
		Output:             GetEnv("LOG_OUTPUT", "stdout"),
		SlowQueryThreshold: GetEnvDuration("LOG_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be: debug, info, warn, error)", c.Level)
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (must be: json, console)", c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("log output must not be empty")
	}
	if c.SlowQueryThreshold < 0 {
		return fmt.Errorf("slow query threshold must be non-negative, got %s", c.SlowQueryThreshold)
	}
	return nil
}

// IsProduction reports whether the production zap preset applies.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
