package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/worker"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int64) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.Filter) ([]*models.Task, error)
	Search(ctx context.Context, term string) ([]*models.Task, error)
	Stats(ctx context.Context) (*models.TaskStats, error)
	DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	SetCompleted(ctx context.Context, taskID int64, completed bool) (*models.Task, error)
	ToggleCompleted(ctx context.Context, taskID int64) (*models.Task, error)

	// Trash
	MoveToTrash(ctx context.Context, taskID int64) error
	RestoreFromTrash(ctx context.Context, taskID int64) error
	DeletePermanently(ctx context.Context, taskID int64) error
	EmptyTrash(ctx context.Context) error
}

// Option configures the service.
type Option func(*service)

// WithClock sets the time source used for new tasks and statistics.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPool runs independent list queries concurrently on pool
func WithPool(pool *worker.Pool) Option {
	return func(s *service) {
		if pool != nil {
			s.async = database.NewAsyncStore(s.repo, pool)
		}
	}
}

// service implements Service interface
type service struct {
	repo  database.TaskRepository
	async *database.AsyncStore
	now   func() time.Time
}

// NewService creates a new task service
func NewService(repo database.TaskRepository, opts ...Option) Service {
	s := &service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTask handles task creation with validation
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.Completed,
		State:       models.TaskStateActive,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.repo.InsertTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	slog.Debug("task created", "id", task.ID)
	return task, nil
}

// UpdateTask applies a partial update and returns the stored result
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	req.apply(task)
	return s.save(ctx, task)
}

// SetCompleted marks a task as done or not done
func (s *service) SetCompleted(ctx context.Context, taskID int64, completed bool) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted == completed {
		return task, nil
	}

	task.IsCompleted = completed
	return s.save(ctx, task)
}

// ToggleCompleted flips the completion flag of a task
func (s *service) ToggleCompleted(ctx context.Context, taskID int64) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	return s.save(ctx, task)
}

func (s *service) save(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.GetTask(ctx, task.ID)
}

// MoveToTrash soft-deletes a task
func (s *service) MoveToTrash(ctx context.Context, taskID int64) error {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return err
	}

	if err := s.repo.MarkAsDeleted(ctx, taskID); err != nil {
		return fmt.Errorf("failed to move task to trash: %w", err)
	}
	return nil
}

// RestoreFromTrash brings a soft-deleted task back
func (s *service) RestoreFromTrash(ctx context.Context, taskID int64) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !task.IsDeleted() {
		return fmt.Errorf("task %d: %w", taskID, ErrNotInTrash)
	}

	if err := s.repo.RestoreTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to restore task: %w", err)
	}
	return nil
}

// DeletePermanently removes a task for good, whatever its state
func (s *service) DeletePermanently(ctx context.Context, taskID int64) error {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return err
	}

	if err := s.repo.DeleteTaskByID(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// EmptyTrash purges every soft-deleted task
func (s *service) EmptyTrash(ctx context.Context) error {
	if err := s.repo.DeleteAllDeletedTasks(ctx); err != nil {
		return fmt.Errorf("failed to empty trash: %w", err)
	}
	return nil
}

// GetTask retrieves a single task by ID
func (s *service) GetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if errors.Is(err, database.ErrTaskNotFound) {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrTaskNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks matching filter.
// FilterAll lists pending, then completed, then trashed tasks.
func (s *service) ListTasks(ctx context.Context, filter models.Filter) ([]*models.Task, error) {
	var sources []models.Filter

	switch filter {
	case models.FilterActive, "":
		sources = []models.Filter{models.FilterActive}
	case models.FilterPending, models.FilterCompleted, models.FilterDeleted:
		sources = []models.Filter{filter}
	case models.FilterAll:
		sources = []models.Filter{models.FilterPending, models.FilterCompleted, models.FilterDeleted}
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFilter, filter)
	}

	batches, err := s.fetch(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s tasks: %w", filter, err)
	}

	tasks := []*models.Task{}
	for _, batch := range batches {
		tasks = append(tasks, batch...)
	}
	return tasks, nil
}

// fetch runs the list query behind each filter, concurrently when the
// service has a worker pool, and returns the results in the same order.
func (s *service) fetch(ctx context.Context, filters ...models.Filter) ([][]*models.Task, error) {
	out := make([][]*models.Task, len(filters))

	if s.async == nil {
		for i, filter := range filters {
			tasks, err := s.query(filter)(ctx)
			if err != nil {
				return nil, err
			}
			out[i] = tasks
		}
		return out, nil
	}

	futures := make([]*worker.Future[[]*models.Task], len(filters))
	for i, filter := range filters {
		futures[i] = s.asyncQuery(ctx, filter)
	}
	for i, future := range futures {
		tasks, err := future.Wait(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = tasks
	}
	return out, nil
}

func (s *service) query(filter models.Filter) func(context.Context) ([]*models.Task, error) {
	switch filter {
	case models.FilterPending:
		return s.repo.GetPendingTasks
	case models.FilterCompleted:
		return s.repo.GetCompletedTasks
	case models.FilterDeleted:
		return s.repo.GetDeletedTasks
	default:
		return s.repo.GetAllActiveTasks
	}
}

func (s *service) asyncQuery(ctx context.Context, filter models.Filter) *worker.Future[[]*models.Task] {
	switch filter {
	case models.FilterPending:
		return s.async.GetPendingTasks(ctx)
	case models.FilterCompleted:
		return s.async.GetCompletedTasks(ctx)
	case models.FilterDeleted:
		return s.async.GetDeletedTasks(ctx)
	default:
		return s.async.GetAllActiveTasks(ctx)
	}
}

// Search finds active tasks whose title or description contains term
func (s *service) Search(ctx context.Context, term string) ([]*models.Task, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*models.Task{}, nil
	}

	tasks, err := s.repo.SearchTasks(ctx, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// DueSoon lists open tasks due within window from now
func (s *service) DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]*models.Task, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	tasks, err := s.repo.GetTasksDueBetween(ctx, now, now.Add(window))
	if err != nil {
		return nil, fmt.Errorf("failed to get due tasks: %w", err)
	}
	return tasks, nil
}
