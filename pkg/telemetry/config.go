package telemetry

import (
	"fmt"
	"os"
)

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string

	// Format is the log format (console, json).
	Format string

	// Output is stdout, stderr or a file path.
	Output string

	// EnableCaller adds caller information to log entries.
	EnableCaller bool

	// NoColor disables colors in console output.
	NoColor bool
}

// DefaultLoggingConfig returns the CLI defaults: console output on stderr at
// info level. LOG_LEVEL overrides the level when set.
func DefaultLoggingConfig() LoggingConfig {
	cfg := LoggingConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	return cfg
}

// Validate checks the configuration for errors.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}

	switch c.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Format)
	}

	if c.Output == "" {
		return fmt.Errorf("log output is required")
	}

	return nil
}
