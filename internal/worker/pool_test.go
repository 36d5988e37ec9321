package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_ReturnsResult(t *testing.T) {
	t.Parallel()

	p := NewPool(2, 4)
	defer func() { _ = p.Close() }()

	f := Submit(context.Background(), p, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSubmit_PropagatesError(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 0)
	defer func() { _ = p.Close() }()

	boom := errors.New("boom")
	f := Submit(context.Background(), p, func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSubmit_CancelledBeforeStartSkipsJob(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 4)
	defer func() { _ = p.Close() }()

	// Occupy the only worker so the next job waits in the queue.
	release := make(chan struct{})
	blocker := Submit(context.Background(), p, func(ctx context.Context) (struct{}, error) {
		<-release
		return struct{}{}, nil
	})

	var ran atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	f := Submit(ctx, p, func(ctx context.Context) (struct{}, error) {
		ran.Store(true)
		return struct{}{}, nil
	})

	cancel()
	close(release)

	_, err := blocker.Wait(context.Background())
	require.NoError(t, err)

	_, err = f.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran.Load(), "cancelled job should never run")
}

func TestSubmit_StartedJobRunsToCompletion(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 0)
	defer func() { _ = p.Close() }()

	started := make(chan struct{})
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	f := Submit(ctx, p, func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "finished", nil
	})

	<-started
	cancel()
	close(release)

	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "finished", got)
}

func TestSubmit_RecoversPanic(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 0)
	defer func() { _ = p.Close() }()

	f := Submit(context.Background(), p, func(ctx context.Context) (int, error) {
		panic("kaboom")
	})
	_, err := f.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	// The worker survives the panic.
	g := Submit(context.Background(), p, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	got, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestSubmit_AfterClose(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 0)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "second Close should be a no-op")

	f := Submit(context.Background(), p, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestClose_DrainsQueuedJobs(t *testing.T) {
	t.Parallel()

	p := NewPool(2, 16)

	var count atomic.Int32
	futures := make([]*Future[struct{}], 0, 10)
	for range 10 {
		futures = append(futures, Submit(context.Background(), p, func(ctx context.Context) (struct{}, error) {
			count.Add(1)
			return struct{}{}, nil
		}))
	}

	require.NoError(t, p.Close())
	assert.Equal(t, int32(10), count.Load())
	for _, f := range futures {
		select {
		case <-f.Done():
		default:
			t.Fatal("future not resolved after Close")
		}
	}
}

func TestFuture_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	p := NewPool(1, 0)
	release := make(chan struct{})
	defer func() {
		close(release)
		_ = p.Close()
	}()

	f := Submit(context.Background(), p, func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
