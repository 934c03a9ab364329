package keepalive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(start time.Time) (get func() time.Time, advance func(time.Duration)) {
	t := start
	return func() time.Time { return t }, func(d time.Duration) { t = t.Add(d) }
}

func TestManagerShouldPing(t *testing.T) {
	clock, advance := fakeClock(time.Now())
	old := now
	now = clock
	defer func() { now = old }()

	m := NewManager(Config{Interval: 30 * time.Second, Timeout: 10 * time.Second, MaxFailures: 3, Enabled: true})
	assert.False(t, m.ShouldPing(), "should not ping immediately after construction")

	advance(29 * time.Second)
	assert.False(t, m.ShouldPing())

	advance(2 * time.Second)
	assert.True(t, m.ShouldPing(), "should ping once interval elapses")

	m.OnPingSent()
	assert.False(t, m.ShouldPing(), "should not double-send while a ping is outstanding")
}

func TestManagerFailureTracking(t *testing.T) {
	clock, advance := fakeClock(time.Now())
	old := now
	now = clock
	defer func() { now = old }()

	m := NewManager(Config{Interval: time.Second, Timeout: time.Second, MaxFailures: 3, Enabled: true})

	m.OnPingSent()
	m.OnPingFailure()
	require.False(t, m.IsConnectionFailed())

	m.OnPingSent()
	m.OnPingFailure()
	require.False(t, m.IsConnectionFailed())

	m.OnPingSent()
	m.OnPingFailure()
	require.True(t, m.IsConnectionFailed(), "three consecutive failures trips the connection-failed state")

	m.OnPingSent()
	m.OnPingSuccess()
	require.False(t, m.IsConnectionFailed(), "a success resets the streak")

	advance(time.Second)
	_ = advance
}

func TestManagerDisabled(t *testing.T) {
	m := NewManager(Config{Enabled: false})
	assert.False(t, m.ShouldPing(), "a disabled manager never requests a ping")
}

func TestManagerStatistics(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.OnPingSent()
	m.OnPingSuccess()
	m.OnPingSent()
	m.OnPingFailure()

	status := m.Status()
	assert.EqualValues(t, 2, status.TotalPingsSent)
	assert.EqualValues(t, 1, status.TotalPingsSucceeded)
	assert.EqualValues(t, 1, status.TotalPingsFailed)
	assert.Equal(t, 1, status.ConsecutiveFailures)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxFailures)
	assert.True(t, cfg.Enabled)
}

func TestPingTimedOut(t *testing.T) {
	clock, advance := fakeClock(time.Now())
	old := now
	now = clock
	defer func() { now = old }()

	m := NewManager(Config{Interval: time.Second, Timeout: 5 * time.Second, MaxFailures: 3, Enabled: true})
	m.OnPingSent()
	assert.False(t, m.PingTimedOut())
	advance(6 * time.Second)
	assert.True(t, m.PingTimedOut())
}
