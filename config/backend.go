package config

import "time"

// BackendConfig contains scoring backend connection configuration.
type BackendConfig struct {
	// Host is the backend base URL. Loopback hosts trigger the one-time
	// development trust handshake.
	Host string `env:"HOST" envDefault:"https://api.cheddaboards.com"`

	// Timeout bounds each backend HTTP call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to backend configuration.
func (c *BackendConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}
