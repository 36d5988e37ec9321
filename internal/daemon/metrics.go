package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	ChecksRun     atomic.Int64
	RemindersSent atomic.Int64
	Failures      atomic.Int64
	lastCheck     atomic.Int64 // unix nanoseconds, 0 before the first pass
	StartTime     time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// RecordCheck records a completed reminder pass
func (m *Metrics) RecordCheck(at time.Time, delivered int, failed bool) {
	m.ChecksRun.Add(1)
	m.RemindersSent.Add(int64(delivered))
	if failed {
		m.Failures.Add(1)
	}
	m.lastCheck.Store(at.UnixNano())
}

// GetChecksRun returns the number of reminder passes
func (m *Metrics) GetChecksRun() int64 {
	return m.ChecksRun.Load()
}

// GetRemindersSent returns the total reminders delivered
func (m *Metrics) GetRemindersSent() int64 {
	return m.RemindersSent.Load()
}

// GetFailures returns the number of passes that reported an error
func (m *Metrics) GetFailures() int64 {
	return m.Failures.Load()
}

// GetLastCheck returns the time of the latest pass, zero if none ran yet
func (m *Metrics) GetLastCheck() time.Time {
	ns := m.lastCheck.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	ChecksRun     int64     `json:"checks_run"`
	RemindersSent int64     `json:"reminders_sent"`
	Failures      int64     `json:"failures"`
	LastCheck     time.Time `json:"last_check"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ChecksRun:     m.GetChecksRun(),
		RemindersSent: m.GetRemindersSent(),
		Failures:      m.GetFailures(),
		LastCheck:     m.GetLastCheck(),
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime).String(),
	}
}
