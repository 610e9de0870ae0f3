package config

import (
	"os"
	"time"

	"github.com/kbukum/promptprobe/httpclient"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/util"
	"github.com/kbukum/promptprobe/validation"
)

// Known providers.
const (
	ProviderTargon = "targon"
	ProviderOpenAI = "openai"
	ProviderCustom = "custom"
)

// DefaultSystemPrompt is the system message sent ahead of the prompt file.
const DefaultSystemPrompt = "You are a helpful programming assistant."

// Preset holds the endpoint defaults of a known provider.
type Preset struct {
	BaseURL       string
	KeyEnv        string
	Model         string
	RoutingHeader string
}

var presets = map[string]Preset{
	ProviderTargon: {
		BaseURL: "https://api.targon.com/v1",
		KeyEnv:  "TARGON_API_KEY",
		Model:   "deepseek-ai/DeepSeek-V3-0324",
	},
	ProviderOpenAI: {
		BaseURL: "https://api.openai.com/v1",
		KeyEnv:  "OPENAI_API_KEY",
		Model:   "gpt-4o-mini",
	},
	ProviderCustom: {
		BaseURL:       "http://127.0.0.1:30010/v1",
		KeyEnv:        "API_KEY",
		Model:         "deepseek-ai/DeepSeek-R1-trt",
		RoutingHeader: "X-Targon-Model",
	},
}

// PresetFor returns the defaults for a provider name.
func PresetFor(provider string) (Preset, bool) {
	p, ok := presets[provider]
	return p, ok
}

// APIConfig selects the chat-completion endpoint and its credential.
type APIConfig struct {
	// Provider picks a preset for the fields left empty: targon, openai, or custom.
	Provider string `yaml:"provider" mapstructure:"provider" validate:"oneof=targon openai custom"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	// Key is the bearer credential. When empty it is read from KeyEnv.
	// An empty credential is sent as "Bearer " and left for the server to reject.
	Key           string                 `yaml:"key" mapstructure:"key"`
	KeyEnv        string                 `yaml:"key_env" mapstructure:"key_env"`
	Model         string                 `yaml:"model" mapstructure:"model" validate:"required"`
	RoutingHeader string                 `yaml:"routing_header" mapstructure:"routing_header"`
	Timeout       time.Duration          `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	HTTP2         httpclient.HTTP2Config `yaml:"http2" mapstructure:"http2"`
	TLS           httpclient.TLSConfig   `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills empty fields from the provider preset and resolves
// the credential.
func (c *APIConfig) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderCustom
	}
	if p, ok := presets[c.Provider]; ok {
		c.BaseURL = util.Coalesce(c.BaseURL, p.BaseURL)
		c.KeyEnv = util.Coalesce(c.KeyEnv, p.KeyEnv)
		c.Model = util.Coalesce(c.Model, p.Model)
		c.RoutingHeader = util.Coalesce(c.RoutingHeader, p.RoutingHeader)
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Key == "" && c.KeyEnv != "" {
		c.Key = util.SanitizeEnvValue(os.Getenv(c.KeyEnv))
	}
}

// SamplingConfig holds the sampling parameters sent with every request.
// Nil pointers are left out of the request body.
type SamplingConfig struct {
	Temperature      *float64 `yaml:"temperature" mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
	TopP             *float64 `yaml:"top_p" mapstructure:"top_p" validate:"omitempty,gte=0,lte=1"`
	MaxTokens        int      `yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=0"`
	FrequencyPenalty *float64 `yaml:"frequency_penalty" mapstructure:"frequency_penalty" validate:"omitempty,gte=-2,lte=2"`
	PresencePenalty  *float64 `yaml:"presence_penalty" mapstructure:"presence_penalty" validate:"omitempty,gte=-2,lte=2"`
}

// FanOutConfig controls cmd/fanout.
type FanOutConfig struct {
	Count int `yaml:"count" mapstructure:"count" validate:"gte=1"`
	// Concurrency bounds in-flight requests; 0 sends all at once.
	Concurrency int  `yaml:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
	Stream      bool `yaml:"stream" mapstructure:"stream"`
	// Live prints each fragment as "[i] fragment" while streams are open.
	Live bool `yaml:"live" mapstructure:"live"`
}

// PromptConfig locates the prompt file and describes how to generate it.
type PromptConfig struct {
	Path     string `yaml:"path" mapstructure:"path" validate:"required"`
	System   string `yaml:"system" mapstructure:"system"`
	Sentence string `yaml:"sentence" mapstructure:"sentence"`
	Words    int    `yaml:"words" mapstructure:"words" validate:"gte=0"`
	MaxChars int    `yaml:"max_chars" mapstructure:"max_chars" validate:"gte=0"`
}

// MetricsConfig controls the Prometheus run report.
type MetricsConfig struct {
	// Textfile, when set, receives the report in text exposition format.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// ProbeConfig is the configuration shared by the request-issuing tools.
type ProbeConfig struct {
	API       APIConfig            `yaml:"api" mapstructure:"api"`
	Sampling  SamplingConfig       `yaml:"sampling" mapstructure:"sampling"`
	FanOut    FanOutConfig         `yaml:"fanout" mapstructure:"fanout"`
	Prompt    PromptConfig         `yaml:"prompt" mapstructure:"prompt"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Metrics   MetricsConfig        `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills in zero-value fields.
func (c *ProbeConfig) ApplyDefaults() {
	c.API.ApplyDefaults()
	if c.FanOut.Count == 0 {
		c.FanOut.Count = 5
	}
	if c.Prompt.Path == "" {
		c.Prompt.Path = "prompt.json"
	}
}

// Validate checks field constraints and the ones tags cannot express.
func (c *ProbeConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	v.Pattern("api.routing_header", c.API.RoutingHeader, `^[A-Za-z0-9-]+$`)
	v.Custom(c.API.HTTP2.ReadIdleTimeout >= 0 && c.API.HTTP2.PingTimeout >= 0,
		"api.http2", "timeouts must not be negative")
	v.Custom((c.API.TLS.CertFile == "") == (c.API.TLS.KeyFile == ""),
		"api.tls", "cert_file and key_file must be set together")
	return v.Err()
}

// ProbeDefaults are the loader defaults for ProbeConfig. They reproduce the
// request body the tools have always sent.
func ProbeDefaults() map[string]any {
	return map[string]any{
		"environment":                "development",
		"api.provider":               ProviderCustom,
		"sampling.temperature":       0.7,
		"sampling.top_p":             0.1,
		"sampling.max_tokens":        10000,
		"sampling.frequency_penalty": 0.0,
		"sampling.presence_penalty":  0.0,
		"fanout.count":               5,
		"fanout.stream":              true,
		"prompt.path":                "prompt.json",
		"prompt.system":              DefaultSystemPrompt,
	}
}
