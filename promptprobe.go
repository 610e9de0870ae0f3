// Package promptprobe holds the configuration shared by the promptprobe
// tools and the helpers that turn it into an LLM adapter and request.
package promptprobe

import (
	"github.com/kbukum/promptprobe/config"
	"github.com/kbukum/promptprobe/httpclient"
	"github.com/kbukum/promptprobe/llm"
	_ "github.com/kbukum/promptprobe/llm/openai" // registers the "openai" dialect
	"github.com/kbukum/promptprobe/logger"
)

// Dialect is the wire mapping every supported provider speaks.
const Dialect = "openai"

// Config is the full configuration of a request-issuing tool.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	config.ProbeConfig   `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills in zero-value fields of both halves.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.ProbeConfig.ApplyDefaults()
}

// Validate checks the service fields first, then the probe fields.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.ProbeConfig.Validate()
}

// LLMConfig maps the API and sampling sections onto an adapter config.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		Name:          c.API.Provider + "-llm",
		Dialect:       Dialect,
		BaseURL:       c.API.BaseURL,
		Model:         c.API.Model,
		RoutingHeader: c.API.RoutingHeader,
		Timeout:       c.API.Timeout,
		Auth:          httpclient.BearerAuth(c.API.Key),
		HTTP2:         c.API.HTTP2,
		TLS:           c.API.TLS,
		Defaults: llm.Sampling{
			Temperature:      c.Sampling.Temperature,
			TopP:             c.Sampling.TopP,
			MaxTokens:        c.Sampling.MaxTokens,
			FrequencyPenalty: c.Sampling.FrequencyPenalty,
			PresencePenalty:  c.Sampling.PresencePenalty,
		},
	}
}

// NewAdapter builds the adapter every submission of a run shares.
func (c *Config) NewAdapter(log *logger.Logger) (*llm.Adapter, error) {
	return llm.New(c.LLMConfig(), llm.WithLogger(log))
}

// NewUnsampledAdapter builds an adapter without sampling defaults, so requests
// carry only the parameters they set themselves and the provider picks the rest.
func (c *Config) NewUnsampledAdapter(log *logger.Logger) (*llm.Adapter, error) {
	lc := c.LLMConfig()
	lc.Defaults = llm.Sampling{}
	return llm.New(lc, llm.WithLogger(log))
}

// Request builds the payload sent by cmd/fanout and cmd/stream: the
// configured system prompt followed by user. Model and sampling parameters
// come from the adapter defaults.
func (c *Config) Request(user llm.Message) llm.CompletionRequest {
	return llm.CompletionRequest{
		SystemPrompt: c.Prompt.System,
		Messages:     []llm.Message{user},
		Stream:       c.FanOut.Stream,
	}
}
