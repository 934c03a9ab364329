package smpp

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SMPP_HOST", "SMPP_PORT", "SMPP_USE_TLS", "SMPP_SYSTEM_ID", "SMPP_PASSWORD",
		"SMPP_KEEPALIVE_INTERVAL", "SMPP_FLOW_CONTROL_BASE_RATE",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 2775, cfg.Port)
	assert.False(t, cfg.UseTLS)
	assert.Equal(t, 30*time.Second, cfg.KeepAliveInterval)
	assert.Equal(t, 0.8, cfg.FlowControlCongestionSensitivity)
}

func TestLoadConfigOverride(t *testing.T) {
	t.Setenv("SMPP_HOST", "smsc.example.com")
	t.Setenv("SMPP_PORT", "2776")
	t.Setenv("SMPP_USE_TLS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "smsc.example.com", cfg.Host)
	assert.Equal(t, 2776, cfg.Port)
	assert.True(t, cfg.UseTLS)
}
