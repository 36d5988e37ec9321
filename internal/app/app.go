package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/reminder"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
	"github.com/thenoetrevino/todo/internal/worker"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo *database.Repository

	// Background workers for concurrent reads
	pool *worker.Pool

	logger *slog.Logger

	Config *config.Config

	// Service layer (business logic)
	TaskService taskservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
// The App takes ownership of db and closes it in Close.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		config: config.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var repoOpts []database.RepoOption
	serviceOpts := []taskservice.Option{}
	if cfg.clock != nil {
		repoOpts = append(repoOpts, database.WithClock(cfg.clock))
		serviceOpts = append(serviceOpts, taskservice.WithClock(cfg.clock))
	}

	repo := database.NewRepository(db, repoOpts...)
	pool := worker.NewPool(cfg.config.Worker.Size, cfg.config.Worker.Queue)
	serviceOpts = append(serviceOpts, taskservice.WithPool(pool))

	return &App{
		repo:        repo,
		pool:        pool,
		logger:      cfg.logger,
		Config:      cfg.config,
		TaskService: taskservice.NewService(repo, serviceOpts...),
	}
}

// Open initializes the database described by cfg and builds the App on it.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path, cfg.Database.BusyTimeoutMS)
	if err != nil {
		return nil, err
	}
	return New(db, append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() *database.Repository {
	return a.repo
}

// ReminderChecker builds a reminder checker over the task service using
// the configured lead time and window.
func (a *App) ReminderChecker(notifier reminder.Notifier) *reminder.Checker {
	return reminder.NewChecker(a.TaskService, notifier, a.Config.Reminder.Lead, a.Config.Reminder.Window)
}

// Close stops the worker pool and closes the database.
func (a *App) Close() error {
	poolErr := a.pool.Close()
	if poolErr != nil {
		a.logger.Warn("worker pool shut down with error", "error", poolErr)
	}
	return errors.Join(poolErr, a.repo.Close())
}
