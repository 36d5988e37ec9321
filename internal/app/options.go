package app

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/todo/internal/config"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	config *config.Config
	logger *slog.Logger
	clock  func() time.Time
}

// WithConfig sets the loaded configuration for the application
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClock overrides the time source for timestamps and reminders
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.clock = now
	}
}
