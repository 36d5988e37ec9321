// Package worker runs blocking work off the caller's goroutine on a fixed
// pool of workers and hands back futures for the results.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultSize  = 4
	DefaultQueue = 64
)

// ErrPoolClosed is returned for work submitted after Close.
var ErrPoolClosed = errors.New("worker pool closed")

// Pool is a fixed set of goroutines draining a bounded job queue.
type Pool struct {
	jobs chan func()
	g    errgroup.Group

	mu     sync.RWMutex
	closed bool
}

// NewPool starts size workers behind a queue of the given capacity.
// Non-positive values fall back to DefaultSize and an unbuffered queue.
func NewPool(size, queue int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	if queue < 0 {
		queue = 0
	}

	p := &Pool{jobs: make(chan func(), queue)}
	for range size {
		p.g.Go(func() error {
			for job := range p.jobs {
				job()
			}
			return nil
		})
	}
	slog.Debug("worker pool started", "size", size, "queue", queue)
	return p
}

func (p *Pool) enqueue(ctx context.Context, job func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work, lets queued jobs finish and waits for the
// workers to exit. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	return p.g.Wait()
}

// Submit schedules fn on the pool and returns a future for its result.
//
// If ctx is done before a worker picks the job up, fn never runs and the
// future resolves with ctx.Err(). Once fn has started it is not interrupted
// by the pool; it sees ctx and may honour it itself.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	job := func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("worker job panicked", "panic", r)
				f.fail(fmt.Errorf("worker: job panicked: %v", r))
			}
		}()

		if err := ctx.Err(); err != nil {
			f.fail(err)
			return
		}
		f.resolve(fn(ctx))
	}

	if err := p.enqueue(ctx, job); err != nil {
		f.fail(err)
	}
	return f
}
