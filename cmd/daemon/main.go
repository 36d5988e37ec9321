package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/todo/internal/app"
	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/daemon"
	"github.com/thenoetrevino/todo/internal/logging"
	"github.com/thenoetrevino/todo/internal/reminder"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// systemd collects stderr, so the daemon logs there instead of a file
	if err := logging.InitWriter(os.Stderr, cfg.Logging.Level); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	application, err := app.Open(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		slog.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	checker := application.ReminderChecker(reminder.SlogNotifier{Logger: logging.Logger})

	server, err := daemon.NewServer(checker, cfg.Reminder.Schedule)
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("todo daemon starting",
		"database", cfg.Database.Path,
		"schedule", cfg.Reminder.Schedule,
		"pid", os.Getpid(),
	)

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("todo daemon shutting down gracefully")
}
