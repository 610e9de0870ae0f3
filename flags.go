package promptprobe

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/promptprobe/config"
)

// Flags holds the flag set of a tool together with the config keys its
// flags bind to.
type Flags struct {
	*pflag.FlagSet
	keys map[string]string

	ConfigFile  string
	EnvFile     string
	ShowVersion bool
}

// NewFlags creates the flag set of tool with the flags every tool accepts:
// --config, --env-file, --version, --debug, --log-level, and --log-format.
func NewFlags(tool string) *Flags {
	f := &Flags{
		FlagSet: pflag.NewFlagSet(tool, pflag.ContinueOnError),
		keys: map[string]string{
			"config":     config.SkipFlag,
			"env-file":   config.SkipFlag,
			"version":    config.SkipFlag,
			"debug":      "debug",
			"log-level":  "logging.level",
			"log-format": "logging.format",
		},
	}
	f.StringVar(&f.ConfigFile, "config", "", "path to config.yml")
	f.StringVar(&f.EnvFile, "env-file", "", "path to a .env file")
	f.BoolVar(&f.ShowVersion, "version", false, "print version and exit")
	f.Bool("debug", false, "enable debug logging")
	f.String("log-level", "", "log level (trace, debug, info, warn, error)")
	f.String("log-format", "", "log format (console, json, pretty)")
	return f
}

// WithAPIFlags adds the endpoint flags: --provider, --base-url, --model,
// and --timeout.
func (f *Flags) WithAPIFlags() *Flags {
	f.String("provider", "", "provider preset: targon, openai, or custom")
	f.String("base-url", "", "chat-completion API base URL")
	f.String("model", "", "model name")
	f.Duration("timeout", 0, "timeout of non-streaming requests")
	f.Bind("provider", "api.provider")
	f.Bind("base-url", "api.base_url")
	f.Bind("model", "api.model")
	f.Bind("timeout", "api.timeout")
	return f
}

// Bind maps flag name to a config key other than its own name.
func (f *Flags) Bind(name, key string) {
	f.keys[name] = key
}

// Keys returns the flag name to config key mapping for config.WithFlags.
func (f *Flags) Keys() map[string]string {
	return f.keys
}

// Load reads the configuration of tool: defaults, then config.yml, then the
// environment and .env, then the flags set on the command line.
func Load(tool string, f *Flags) (*Config, error) {
	defaults := config.ProbeDefaults()
	defaults["name"] = tool

	opts := []config.LoaderOption{
		config.WithDefaults(defaults),
		config.WithFlags(f.FlagSet, f.Keys()),
	}
	if f.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(f.ConfigFile))
	}
	if f.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(f.EnvFile))
	}

	var cfg Config
	if err := config.LoadConfig(tool, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
