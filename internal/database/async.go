package database

import (
	"context"

	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/worker"
)

// AsyncStore runs TaskStore operations on a worker pool so that callers
// never block on disk I/O. Each call returns a future for its result.
type AsyncStore struct {
	store TaskStore
	pool  *worker.Pool
}

// NewAsyncStore wraps store, dispatching every operation onto pool.
func NewAsyncStore(store TaskStore, pool *worker.Pool) *AsyncStore {
	return &AsyncStore{store: store, pool: pool}
}

func (a *AsyncStore) exec(ctx context.Context, fn func(context.Context) error) *worker.Future[struct{}] {
	return worker.Submit(ctx, a.pool, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

func (a *AsyncStore) list(ctx context.Context, fn func(context.Context) ([]*models.Task, error)) *worker.Future[[]*models.Task] {
	return worker.Submit(ctx, a.pool, fn)
}

func (a *AsyncStore) InsertTask(ctx context.Context, task *models.Task) *worker.Future[int64] {
	return worker.Submit(ctx, a.pool, func(ctx context.Context) (int64, error) {
		return a.store.InsertTask(ctx, task)
	})
}

func (a *AsyncStore) UpdateTask(ctx context.Context, task *models.Task) *worker.Future[struct{}] {
	return a.exec(ctx, func(ctx context.Context) error { return a.store.UpdateTask(ctx, task) })
}

func (a *AsyncStore) DeleteTask(ctx context.Context, task *models.Task) *worker.Future[struct{}] {
	return a.exec(ctx, func(ctx context.Context) error { return a.store.DeleteTask(ctx, task) })
}

func (a *AsyncStore) DeleteTaskByID(ctx context.Context, id int64) *worker.Future[struct{}] {
	return a.exec(ctx, func(ctx context.Context) error { return a.store.DeleteTaskByID(ctx, id) })
}

func (a *AsyncStore) MarkAsDeleted(ctx context.Context, id int64) *worker.Future[struct{}] {
	return a.exec(ctx, func(ctx context.Context) error { return a.store.MarkAsDeleted(ctx, id) })
}

func (a *AsyncStore) RestoreTask(ctx context.Context, id int64) *worker.Future[struct{}] {
	return a.exec(ctx, func(ctx context.Context) error { return a.store.RestoreTask(ctx, id) })
}

func (a *AsyncStore) DeleteAllDeletedTasks(ctx context.Context) *worker.Future[struct{}] {
	return a.exec(ctx, a.store.DeleteAllDeletedTasks)
}

func (a *AsyncStore) GetAllActiveTasks(ctx context.Context) *worker.Future[[]*models.Task] {
	return a.list(ctx, a.store.GetAllActiveTasks)
}

func (a *AsyncStore) GetPendingTasks(ctx context.Context) *worker.Future[[]*models.Task] {
	return a.list(ctx, a.store.GetPendingTasks)
}

func (a *AsyncStore) GetCompletedTasks(ctx context.Context) *worker.Future[[]*models.Task] {
	return a.list(ctx, a.store.GetCompletedTasks)
}

func (a *AsyncStore) GetDeletedTasks(ctx context.Context) *worker.Future[[]*models.Task] {
	return a.list(ctx, a.store.GetDeletedTasks)
}

func (a *AsyncStore) SearchTasks(ctx context.Context, pattern string) *worker.Future[[]*models.Task] {
	return a.list(ctx, func(ctx context.Context) ([]*models.Task, error) {
		return a.store.SearchTasks(ctx, pattern)
	})
}
