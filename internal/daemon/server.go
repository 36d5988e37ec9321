// Package daemon runs the reminder checker on a cron schedule.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Checker runs a single reminder pass.
type Checker interface {
	Check(ctx context.Context, now time.Time) (int, error)
}

// Server represents the todo reminder daemon
type Server struct {
	checker  Checker
	schedule string
	cron     *cron.Cron
	metrics  *Metrics
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces the time source handed to each pass
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation evaluates the schedule in loc instead of the local zone
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		s.cron = newCron(loc)
	}
}

func newCron(loc *time.Location) *cron.Cron {
	logger := cron.VerbosePrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug))
	return cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
}

// NewServer creates a daemon that runs checker on the given cron schedule,
// e.g. "@every 5m" or "*/10 * * * *".
func NewServer(checker Checker, schedule string, opts ...Option) (*Server, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	s := &Server{
		checker:  checker,
		schedule: schedule,
		metrics:  NewMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cron == nil {
		s.cron = newCron(time.Local)
	}
	return s, nil
}

// Metrics exposes the daemon counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs one pass immediately, then on every tick of the schedule, until
// ctx is cancelled. It waits for a running pass to finish before returning.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("daemon already running")
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	entry, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("schedule reminder check: %w", err)
	}
	defer s.cron.Remove(entry)

	slog.Info("daemon started", "schedule", s.schedule)
	s.RunOnce(ctx)
	s.cron.Start()

	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()

	slog.Info("daemon stopped", "metrics", s.metrics.GetSnapshot())
	return nil
}

// RunOnce performs a single reminder pass and records it in the metrics
func (s *Server) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	now := s.now()
	delivered, err := s.checker.Check(ctx, now)
	s.metrics.RecordCheck(now, delivered, err != nil)
	if err != nil {
		slog.Error("reminder check failed", "error", err, "delivered", delivered)
		return
	}
	if delivered > 0 {
		slog.Info("reminders sent", "count", delivered)
	}
}
