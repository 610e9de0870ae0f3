package llm

import (
	"time"

	"github.com/kbukum/promptprobe/httpclient"
)

// Config holds configuration for creating an LLM adapter.
// It is provider-agnostic: the Dialect field selects the provider mapping.
type Config struct {
	// Name identifies this adapter instance in logs.
	Name string `yaml:"name" json:"name"`

	// Dialect selects the provider mapping (e.g., "openai").
	// Must match a dialect registered via RegisterDialect.
	Dialect string `yaml:"dialect" json:"dialect"`

	// BaseURL is the provider's API base URL (e.g., "https://api.targon.com/v1").
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Model is the default model to use.
	Model string `yaml:"model" json:"model"`

	// RoutingHeader, when set, is sent on every request with the request's
	// model as its value (Targon routes on X-Targon-Model).
	RoutingHeader string `yaml:"routing_header" json:"routing_header"`

	// Defaults are sampling parameters applied to requests that leave them unset.
	Defaults Sampling `yaml:"defaults" json:"defaults"`

	// Timeout for non-streaming HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Auth configures authentication (Bearer token, API key).
	Auth *httpclient.AuthConfig `yaml:"-" json:"-"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" json:"headers"`

	// MaxIdleConnsPerHost sizes the shared connection pool.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" json:"max_idle_conns_per_host"`

	// HTTP2 configures ping-based connection health checks.
	HTTP2 httpclient.HTTP2Config `yaml:"http2" json:"http2"`

	// TLS customizes certificate handling for self-hosted endpoints.
	TLS httpclient.TLSConfig `yaml:"tls" json:"tls"`
}

// Sampling groups the sampling parameters an adapter fills in by default.
type Sampling struct {
	Temperature      *float64 `yaml:"temperature" json:"temperature,omitempty"`
	TopP             *float64 `yaml:"top_p" json:"top_p,omitempty"`
	MaxTokens        int      `yaml:"max_tokens" json:"max_tokens,omitempty"`
	FrequencyPenalty *float64 `yaml:"frequency_penalty" json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `yaml:"presence_penalty" json:"presence_penalty,omitempty"`
}

// applyDefaults sets default values for unset config fields.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect + "-llm"
	}
}
