package flowcontrol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFakeClock(t *testing.T) func(time.Duration) {
	start := time.Now()
	old := now
	now = func() time.Time { return start }
	t.Cleanup(func() { now = old })
	return func(d time.Duration) {
		start = start.Add(d)
		now = func() time.Time { return start }
	}
}

func TestCongestionStateUpdate(t *testing.T) {
	withFakeClock(t)
	m := NewManager(DefaultConfig())
	base := m.CurrentRate()
	require.Equal(t, DefaultConfig().BaseRate, base)

	m.UpdateCongestionState(50)
	assert.Less(t, m.CurrentRate(), base, "higher congestion must reduce the rate")

	m.UpdateCongestionState(100)
	assert.GreaterOrEqual(t, m.CurrentRate(), DefaultConfig().MinRate)
}

func TestErrorBasedAdjustment(t *testing.T) {
	withFakeClock(t)
	m := NewManager(DefaultConfig())
	before := m.CurrentRate()

	m.HandleErrorResponse(ErrorThrottlingError)
	afterThrottling := m.CurrentRate()
	assert.InDelta(t, before*0.9, afterThrottling, 0.001)

	m.HandleErrorResponse(ErrorCongestionStateRejected)
	afterRejected := m.CurrentRate()
	assert.InDelta(t, afterThrottling*0.7, afterRejected, 0.001)
}

func TestErrorBasedAdjustmentDisabled(t *testing.T) {
	withFakeClock(t)
	cfg := DefaultConfig()
	cfg.EnableErrorBasedAdaptation = false
	m := NewManager(cfg)
	before := m.CurrentRate()
	m.HandleErrorResponse(ErrorThrottlingError)
	assert.Equal(t, before, m.CurrentRate(), "adaptation disabled must leave the rate untouched")
}

func TestRateLimitsRespected(t *testing.T) {
	withFakeClock(t)
	m := NewManager(DefaultConfig())
	for i := 0; i < 50; i++ {
		m.HandleErrorResponse(ErrorCongestionStateRejected)
	}
	assert.GreaterOrEqual(t, m.CurrentRate(), DefaultConfig().MinRate)

	m.UpdateCongestionState(0)
	for i := 0; i < 50; i++ {
		m.UpdateCongestionState(0)
	}
	assert.LessOrEqual(t, m.CurrentRate(), DefaultConfig().MaxRate)
}

func TestMessageDelayCalculation(t *testing.T) {
	withFakeClock(t)
	cfg := DefaultConfig()
	cfg.BaseRate = 10.0
	cfg.MaxRate = 10.0
	m := NewManager(cfg)
	delay := m.MessageDelay()
	assert.InDelta(t, float64(100*time.Millisecond), float64(delay), float64(5*time.Millisecond))
}

func TestRecommendedActions(t *testing.T) {
	withFakeClock(t)
	m := NewManager(DefaultConfig())
	assert.Equal(t, ActionMaintainRate, m.RecommendedAction(), "no congestion reading yet maintains rate")

	m.UpdateCongestionState(5)
	assert.Equal(t, ActionIncreaseRate, m.RecommendedAction())

	m.UpdateCongestionState(20)
	assert.Equal(t, ActionMaintainRate, m.RecommendedAction())

	m.UpdateCongestionState(50)
	assert.Equal(t, ActionReduceRate, m.RecommendedAction())

	m.UpdateCongestionState(70)
	assert.Equal(t, ActionReduceRateSignificantly, m.RecommendedAction())

	m.UpdateCongestionState(90)
	assert.Equal(t, ActionMinimizeRate, m.RecommendedAction())
}

func TestCongestionTimeout(t *testing.T) {
	advance := withFakeClock(t)
	cfg := DefaultConfig()
	cfg.CongestionTimeout = 10 * time.Second
	m := NewManager(cfg)

	m.UpdateCongestionState(70)
	assert.Equal(t, ActionReduceRateSignificantly, m.RecommendedAction())

	advance(11 * time.Second)
	m.Tick()
	assert.Equal(t, uint8(0), m.Statistics().CongestionState, "stale congestion reading decays to zero")
	assert.Equal(t, ActionMaintainRate, m.RecommendedAction(), "a timed-out reading is treated as no data")
}

func TestStatisticsTracking(t *testing.T) {
	withFakeClock(t)
	m := NewManager(DefaultConfig())
	m.UpdateCongestionState(20)
	m.HandleErrorResponse(ErrorMessageThrottled)

	stats := m.Statistics()
	assert.EqualValues(t, 1, stats.TotalAdjustments)
	assert.EqualValues(t, 1, stats.TotalErrors)
	assert.Equal(t, uint8(20), stats.CongestionState)
}
