package config

import "time"

// APIConfig contains REST backend configuration.
type APIConfig struct {
	// BaseURL of the platform backend.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// MessageExpr locates the display message inside backend error bodies.
	MessageExpr string `env:"MESSAGE_EXPR" envDefault:"message"`

	// Timeout bounds each HTTP request at the transport level.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to API configuration values.
func (c *APIConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MessageExpr == "" {
		c.MessageExpr = "message"
	}
}
