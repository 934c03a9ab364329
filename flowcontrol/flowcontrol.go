// Package flowcontrol adapts an ESME's outbound send rate to SMSC-signaled
// congestion (the v5.0 congestion_state TLV) and to throttling-flavored
// error responses.
package flowcontrol

import (
	"sync"
	"time"
)

// Action is the recommendation Manager.RecommendedAction
// returns for the caller's next send decision, one of five congestion
// bands.
type Action int

const (
	// ActionIncreaseRate means congestion is low (0-10); it is safe to
	// ramp sends back up.
	ActionIncreaseRate Action = iota
	// ActionMaintainRate means congestion is moderate (11-30), or no
	// congestion reading has been reported yet; hold the current rate.
	ActionMaintainRate
	// ActionReduceRate means congestion is high (31-60); back off.
	ActionReduceRate
	// ActionReduceRateSignificantly means congestion is very high
	// (61-80); back off hard.
	ActionReduceRateSignificantly
	// ActionMinimizeRate means congestion is critical (81-100); send at
	// the floor rate only.
	ActionMinimizeRate
)

func (a Action) String() string {
	switch a {
	case ActionIncreaseRate:
		return "increase_rate"
	case ActionMaintainRate:
		return "maintain_rate"
	case ActionReduceRate:
		return "reduce_rate"
	case ActionReduceRateSignificantly:
		return "reduce_rate_significantly"
	case ActionMinimizeRate:
		return "minimize_rate"
	default:
		return "unknown"
	}
}

// Config tunes the adaptation algorithm. Zero-value numeric and duration
// fields are replaced with their documented defaults by NewManager;
// EnableErrorBasedAdaptation is used as given.
type Config struct {
	// CongestionSensitivity scales how strongly the 0-100 congestion_state
	// reading reduces the send rate. Default 0.8.
	CongestionSensitivity float64
	// RecoveryRate is the fraction of the rate gap recovered per
	// adjustment tick once congestion subsides. Default 0.1.
	RecoveryRate float64
	// CongestionTimeout is how long a congestion_state reading is
	// trusted; the first Tick after it has passed resets the reading to
	// zero and treats it as absent. Default 60s.
	CongestionTimeout time.Duration
	// AdjustmentInterval is the minimum spacing Tick leaves between rate
	// recalculations. UpdateCongestionState and HandleErrorResponse are
	// not gated by it: each call adjusts the rate at once. Default 5s.
	AdjustmentInterval time.Duration
	// EnableErrorBasedAdaptation toggles whether throttling-flavored
	// error responses also depress the rate. Default true.
	EnableErrorBasedAdaptation bool
	// BaseRate is the uncongested steady-state send rate, messages per
	// second. Default 10.0.
	BaseRate float64
	// MinRate/MaxRate clamp the adapted rate. Defaults 0.1 and BaseRate.
	MinRate float64
	MaxRate float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		CongestionSensitivity:      0.8,
		RecoveryRate:               0.1,
		CongestionTimeout:          60 * time.Second,
		AdjustmentInterval:         5 * time.Second,
		EnableErrorBasedAdaptation: true,
		BaseRate:                   10.0,
		MinRate:                    0.1,
		MaxRate:                    10.0,
	}
}

func (c Config) withDefaults() Config {
	if c.CongestionSensitivity <= 0 {
		c.CongestionSensitivity = 0.8
	}
	if c.RecoveryRate <= 0 {
		c.RecoveryRate = 0.1
	}
	if c.CongestionTimeout <= 0 {
		c.CongestionTimeout = 60 * time.Second
	}
	if c.AdjustmentInterval <= 0 {
		c.AdjustmentInterval = 5 * time.Second
	}
	if c.BaseRate <= 0 {
		c.BaseRate = 10.0
	}
	if c.MaxRate <= 0 {
		c.MaxRate = c.BaseRate
	}
	if c.MinRate <= 0 {
		c.MinRate = 0.1
	}
	return c
}

// ErrorKind classifies the throttling-flavored protocol responses that
// feed error-based rate adaptation, independent of the pdu package so
// flowcontrol carries no dependency on it.
type ErrorKind int

const (
	// ErrorCongestionStateRejected is a submission rejected specifically
	// because of a reported congestion state.
	ErrorCongestionStateRejected ErrorKind = iota
	// ErrorMessageThrottled is a generic throttled-message rejection.
	ErrorMessageThrottled
	// ErrorThrottlingError is SMPP's ThrottlingError command_status.
	ErrorThrottlingError
)

var errorMultiplier = map[ErrorKind]float64{
	ErrorCongestionStateRejected: 0.7,
	ErrorMessageThrottled:        0.8,
	ErrorThrottlingError:         0.9,
}

// Statistics is a point-in-time snapshot of a Manager's state.
type Statistics struct {
	CurrentRate       float64
	CongestionState   uint8
	LastCongestionAge time.Duration
	TotalAdjustments  uint64
	TotalErrors       uint64
}

// Manager tracks the SMSC's most recently reported congestion state and
// any throttling errors observed, and derives a recommended send rate
// from them. It is a plain value consulted cooperatively, the same
// polling-not-background-task model as keepalive.Manager.
type Manager struct {
	mu sync.Mutex

	cfg Config

	currentRate         float64
	congestionState     uint8
	hasCongestionReading bool
	lastCongestionUpdate time.Time
	lastAdjustment      time.Time

	totalAdjustments uint64
	totalErrors      uint64
}

var now = time.Now

// NewManager builds a Manager at cfg.BaseRate with no congestion
// reported yet.
func NewManager(cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		cfg:                  cfg,
		currentRate:          cfg.BaseRate,
		lastCongestionUpdate: now(),
		lastAdjustment:       now(),
	}
}

// UpdateCongestionState records a new 0-100 congestion_state reading
// (as carried by the v5.0 congestion_state TLV) and recalculates the
// current send rate from it.
func (m *Manager) UpdateCongestionState(state uint8) {
	if state > 100 {
		state = 100
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.congestionState = state
	m.hasCongestionReading = true
	m.lastCongestionUpdate = now()
	m.recalculate()
}

// recalculate derives currentRate from congestionState, resetting a
// stale congestion reading to zero (and marking it absent) once
// CongestionTimeout has elapsed since the last update. Caller must hold
// m.mu.
func (m *Manager) recalculate() {
	if now().Sub(m.lastCongestionUpdate) >= m.cfg.CongestionTimeout {
		m.congestionState = 0
		m.hasCongestionReading = false
	}
	target := m.cfg.BaseRate * (100.0 - float64(m.congestionState)) / 100.0
	magnitude := m.cfg.RecoveryRate
	if m.congestionState > 0 {
		magnitude = m.cfg.CongestionSensitivity
	}
	if target < m.currentRate {
		m.currentRate -= (m.currentRate - target) * magnitude
	} else {
		m.currentRate += (target - m.currentRate) * magnitude
	}
	m.currentRate = clamp(m.currentRate, m.cfg.MinRate, m.cfg.MaxRate)
	m.lastAdjustment = now()
	m.totalAdjustments++
}

// HandleErrorResponse applies an error-driven rate reduction for a
// throttling-flavored response, when EnableErrorBasedAdaptation is set.
func (m *Manager) HandleErrorResponse(kind ErrorKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalErrors++
	if !m.cfg.EnableErrorBasedAdaptation {
		return
	}
	mult, ok := errorMultiplier[kind]
	if !ok {
		mult = 0.8
	}
	m.currentRate = clamp(m.currentRate*mult, m.cfg.MinRate, m.cfg.MaxRate)
	m.lastAdjustment = now()
}

// Tick re-evaluates the decay/recovery schedule even when no new
// congestion reading has arrived, honoring AdjustmentInterval. Callers
// on a cooperative loop call this periodically.
func (m *Manager) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if now().Sub(m.lastAdjustment) < m.cfg.AdjustmentInterval {
		return
	}
	m.recalculate()
}

// CurrentRate returns the current recommended send rate in messages per
// second.
func (m *Manager) CurrentRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentRate
}

// MessageDelay returns the minimum spacing between sends implied by the
// current rate: 1/rate, or 1 second if the rate is non-positive.
func (m *Manager) MessageDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentRate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / m.currentRate)
}

// RecommendedAction maps the current congestion state to one of five
// bands: 0-10 increase, 11-30 maintain, 31-60 reduce, 61-80 reduce
// significantly, 81-100 minimize.
func (m *Manager) RecommendedAction() Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasCongestionReading {
		return ActionMaintainRate
	}
	switch {
	case m.congestionState <= 10:
		return ActionIncreaseRate
	case m.congestionState <= 30:
		return ActionMaintainRate
	case m.congestionState <= 60:
		return ActionReduceRate
	case m.congestionState <= 80:
		return ActionReduceRateSignificantly
	default:
		return ActionMinimizeRate
	}
}

// Statistics returns a snapshot of the manager's counters.
func (m *Manager) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Statistics{
		CurrentRate:       m.currentRate,
		CongestionState:   m.congestionState,
		LastCongestionAge: now().Sub(m.lastCongestionUpdate),
		TotalAdjustments:  m.totalAdjustments,
		TotalErrors:       m.totalErrors,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
