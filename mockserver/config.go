package mockserver

import (
	"net/http"
	"time"

	"github.com/kbukum/promptprobe/server"
	"github.com/kbukum/promptprobe/validation"
)

// Reply modes.
const (
	ReplyEcho  = "echo"
	ReplyLorem = "lorem"
)

// DefaultPort matches the base URL of the "custom" provider preset.
const DefaultPort = 30010

// Config controls the fake provider.
type Config struct {
	Server server.Config `yaml:"server" mapstructure:"server"`

	// Latency is waited before the first byte of every completion.
	Latency time.Duration `yaml:"latency" mapstructure:"latency" validate:"gte=0"`
	// FragmentDelay is waited between streamed frames.
	FragmentDelay time.Duration `yaml:"fragment_delay" mapstructure:"fragment_delay" validate:"gte=0"`
	// FailureRate is the share of completions answered with FailureStatus.
	FailureRate   float64 `yaml:"failure_rate" mapstructure:"failure_rate" validate:"gte=0,lte=1"`
	FailureStatus int     `yaml:"failure_status" mapstructure:"failure_status" validate:"gte=400,lte=599"`

	// Reply is echo (repeat the last user message) or lorem.
	Reply string `yaml:"reply" mapstructure:"reply" validate:"oneof=echo lorem"`
	// Models are listed by /v1/models; the first is used when a request names none.
	Models []string `yaml:"models" mapstructure:"models" validate:"min=1"`
	// Key, when set, must be presented as a bearer credential.
	Key string `yaml:"key" mapstructure:"key"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	c.Server.ApplyDefaults()
	if c.FailureStatus == 0 {
		c.FailureStatus = http.StatusInternalServerError
	}
	if c.Reply == "" {
		c.Reply = ReplyEcho
	}
	if len(c.Models) == 0 {
		c.Models = []string{"deepseek-ai/DeepSeek-R1-trt", "deepseek-ai/DeepSeek-V3-0324", "gpt-4o-mini"}
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Server.Validate()
}
