package logging

import (
	"errors"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable for the log level.
const EnvLogLevel = `LOG_LEVEL`

// Name is the name of the application the logger is created for.
type Name string

// Config is the configuration for the common logger.
type Config struct {
	// appName is the name of the application.
	appName Name

	// level is the minimum level that is logged.
	level slog.Level
}

// NewConfig creates a new logging configuration. The level is taken from the environment, defaulting to info.
func NewConfig(appName Name) *Config {
	c := &Config{
		appName: appName,
		level:   slog.LevelInfo,
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.level = parseLevel(lvl)
	}

	return c
}

// CommonLogger creates the JSON logger used across the application and sets it as the default logger.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, errors.New("logging config is nil")
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: c.level == slog.LevelDebug,
		Level:     c.level,
	})

	l := slog.New(h).With(slog.String(KeyApp, string(c.appName)))
	slog.SetDefault(l)

	return l, nil
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
