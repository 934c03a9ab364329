// Package keepalive implements session liveness tracking for an SMPP
// ESME connection: a polling timer a caller consults before deciding
// whether to send an enquire_link probe, not a background goroutine.
package keepalive

import (
	"sync"
	"time"
)

// Config tunes keep-alive behavior. Zero-value Interval, Timeout and
// MaxFailures are replaced with their documented defaults by NewManager;
// Enabled is used as given.
type Config struct {
	// Interval is how long the connection may be idle before a probe is
	// due. Default 30s.
	Interval time.Duration
	// Timeout is how long a single probe may go unanswered before it
	// counts as a failure. Default 10s.
	Timeout time.Duration
	// MaxFailures is how many consecutive probe failures are tolerated
	// before the connection is considered failed. Default 3.
	MaxFailures int
	// Enabled toggles the manager entirely; when false, ShouldPing always
	// reports false. Default true.
	Enabled bool
}

// DefaultConfig returns the documented defaults: 30s interval, 10s
// timeout, 3 max failures, enabled.
func DefaultConfig() Config {
	return Config{
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		MaxFailures: 3,
		Enabled:     true,
	}
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 30 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = 3
	}
	return c
}

// Status is a point-in-time snapshot of a Manager's internal counters,
// safe to read and log without holding the manager's lock.
type Status struct {
	Enabled            bool
	LastActivity       time.Time
	LastPingSent       time.Time
	ConsecutiveFailures int
	TotalPingsSent     uint64
	TotalPingsSucceeded uint64
	TotalPingsFailed   uint64
	ConnectionFailed   bool
}

// Manager tracks when the last bit of wire activity was observed and
// decides, on each call to ShouldPing, whether a new enquire_link probe
// is due. It is a plain value type consulted cooperatively by a session
// loop; it does not spawn any goroutine or timer itself.
type Manager struct {
	mu sync.Mutex

	cfg Config

	lastActivity        time.Time
	lastPingSent        time.Time
	awaitingPing        bool
	consecutiveFailures int

	totalPingsSent      uint64
	totalPingsSucceeded uint64
	totalPingsFailed    uint64
}

// NewManager builds a Manager with cfg (defaults filled in for any
// zero-value field), with activity seeded to now.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:          cfg.withDefaults(),
		lastActivity: now(),
	}
}

var now = time.Now

// RecordActivity marks that wire activity (any inbound or outbound PDU)
// was just observed, postponing the next probe by a full interval.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity = now()
}

// ShouldPing reports whether it is time to send a new enquire_link probe:
// the manager is enabled, no probe is currently outstanding, and at
// least Interval has elapsed since the last observed activity.
func (m *Manager) ShouldPing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cfg.Enabled {
		return false
	}
	if m.awaitingPing {
		return false
	}
	return now().Sub(m.lastActivity) >= m.cfg.Interval
}

// OnPingSent records that a probe was just sent and starts its timeout
// clock.
func (m *Manager) OnPingSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPingSent = now()
	m.awaitingPing = true
	m.totalPingsSent++
}

// OnPingSuccess records that the outstanding probe was answered in time,
// resetting the failure streak and refreshing last-activity.
func (m *Manager) OnPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awaitingPing = false
	m.consecutiveFailures = 0
	m.totalPingsSucceeded++
	m.lastActivity = now()
}

// OnPingFailure records that the outstanding probe timed out or was
// rejected, incrementing the consecutive failure streak.
func (m *Manager) OnPingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awaitingPing = false
	m.consecutiveFailures++
	m.totalPingsFailed++
}

// ResetFailures clears the consecutive-failure streak without touching
// the cumulative counters, for use after a caller reconnects.
func (m *Manager) ResetFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consecutiveFailures = 0
}

// IsConnectionFailed reports whether the consecutive failure streak has
// reached MaxFailures, meaning the caller should treat the connection as
// dead.
func (m *Manager) IsConnectionFailed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.consecutiveFailures >= m.cfg.MaxFailures
}

// PingTimedOut reports whether an outstanding probe has exceeded Timeout
// without a response, the signal a session loop uses to call
// OnPingFailure proactively rather than waiting for an explicit error.
func (m *Manager) PingTimedOut() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.awaitingPing {
		return false
	}
	return now().Sub(m.lastPingSent) >= m.cfg.Timeout
}

// Status returns a snapshot of the manager's counters.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Enabled:             m.cfg.Enabled,
		LastActivity:        m.lastActivity,
		LastPingSent:        m.lastPingSent,
		ConsecutiveFailures: m.consecutiveFailures,
		TotalPingsSent:      m.totalPingsSent,
		TotalPingsSucceeded: m.totalPingsSucceeded,
		TotalPingsFailed:    m.totalPingsFailed,
		ConnectionFailed:    m.consecutiveFailures >= m.cfg.MaxFailures,
	}
}
