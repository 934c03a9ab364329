package smpp

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is a typed ESME configuration. No constructor in this module
// takes a Config; its fields correspond to the arguments of Dial/DialTLS,
// the BindCredentials fields and the keepalive/flowcontrol Config
// fields. Struct tags follow absmach/magistrala's
// consumers/notifiers/smpp/config.go convention of env-tag-driven
// loading via caarlos0/env; a caller may equally well build a Config
// literal without touching the environment at all.
type Config struct {
	Host     string `env:"SMPP_HOST" envDefault:"localhost"`
	Port     int    `env:"SMPP_PORT" envDefault:"2775"`
	UseTLS   bool   `env:"SMPP_USE_TLS" envDefault:"false"`
	SystemID string `env:"SMPP_SYSTEM_ID" envDefault:""`
	Password string `env:"SMPP_PASSWORD" envDefault:""`

	SystemType   string `env:"SMPP_SYSTEM_TYPE" envDefault:""`
	AddressRange string `env:"SMPP_ADDRESS_RANGE" envDefault:""`

	DialTimeout time.Duration `env:"SMPP_DIAL_TIMEOUT" envDefault:"10s"`

	KeepAliveInterval    time.Duration `env:"SMPP_KEEPALIVE_INTERVAL" envDefault:"30s"`
	KeepAliveTimeout     time.Duration `env:"SMPP_KEEPALIVE_TIMEOUT" envDefault:"10s"`
	KeepAliveMaxFailures int           `env:"SMPP_KEEPALIVE_MAX_FAILURES" envDefault:"3"`
	KeepAliveEnabled     bool          `env:"SMPP_KEEPALIVE_ENABLED" envDefault:"true"`

	FlowControlBaseRate                  float64       `env:"SMPP_FLOW_CONTROL_BASE_RATE" envDefault:"10"`
	FlowControlCongestionSensitivity     float64       `env:"SMPP_FLOW_CONTROL_CONGESTION_SENSITIVITY" envDefault:"0.8"`
	FlowControlRecoveryRate              float64       `env:"SMPP_FLOW_CONTROL_RECOVERY_RATE" envDefault:"0.1"`
	FlowControlCongestionTimeout         time.Duration `env:"SMPP_FLOW_CONTROL_CONGESTION_TIMEOUT" envDefault:"60s"`
	FlowControlAdjustmentInterval        time.Duration `env:"SMPP_FLOW_CONTROL_ADJUSTMENT_INTERVAL" envDefault:"5s"`
	FlowControlEnableErrorBasedAdaptation bool         `env:"SMPP_FLOW_CONTROL_ERROR_ADAPTATION" envDefault:"true"`
}

// LoadConfig populates a Config from the process environment, applying
// the envDefault tags above for anything unset.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
