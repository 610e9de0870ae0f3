package server

import (
	"time"

	"github.com/kbukum/promptprobe/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host        string        `yaml:"host" mapstructure:"host" validate:"required"`
	Port        int           `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	// WriteTimeout bounds a whole response. Zero means no limit, which
	// streamed completions need.
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	MaxBodySize  string        `yaml:"max_body_size" mapstructure:"max_body_size"` // e.g. "10MB"
}

// ApplyDefaults sets sensible default values for unset fields.
// Port 0 is left alone so tests can bind an ephemeral port.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "10MB"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
