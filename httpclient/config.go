package httpclient

import (
	"fmt"
	"time"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultMaxIdleConnsPerHost = 32
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds non-streaming requests. Streams are bounded by the
	// caller's context only. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// MaxIdleConnsPerHost sizes the shared connection pool. Concurrent
	// submissions to one provider all land on the same host. Defaults to 32.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`

	// HTTP2 configures HTTP/2 connection health checks.
	HTTP2 HTTP2Config `yaml:"http2" mapstructure:"http2"`

	// TLS customizes certificate verification and client certificates.
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// HTTP2Config configures HTTP/2 ping-based health checking of pooled
// connections. A zero ReadIdleTimeout leaves the standard library's
// HTTP/2 defaults in place.
type HTTP2Config struct {
	// ReadIdleTimeout is how long a connection may sit without frames before
	// a PING is sent.
	ReadIdleTimeout time.Duration `yaml:"read_idle_timeout" mapstructure:"read_idle_timeout"`
	// PingTimeout is how long to wait for the PING response before closing
	// the connection.
	PingTimeout time.Duration `yaml:"ping_timeout" mapstructure:"ping_timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
	if c.HTTP2.ReadIdleTimeout > 0 && c.HTTP2.PingTimeout <= 0 {
		c.HTTP2.PingTimeout = 15 * time.Second
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.HTTP2.ReadIdleTimeout < 0 || c.HTTP2.PingTimeout < 0 {
		return fmt.Errorf("httpclient: http2 timeouts must not be negative")
	}
	return c.TLS.Validate()
}
