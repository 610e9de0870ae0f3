// Command mockllm serves a local OpenAI-compatible chat-completion API for
// offline runs of the other tools.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/promptprobe"
	"github.com/kbukum/promptprobe/bootstrap"
	"github.com/kbukum/promptprobe/config"
	"github.com/kbukum/promptprobe/mockserver"
	"github.com/kbukum/promptprobe/version"
)

const toolName = "mockllm"

// Config is the mock provider's configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Mock                 mockserver.Config `yaml:"mock" mapstructure:"mock"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Mock.ApplyDefaults()
}

// Validate checks the service fields, then the mock fields.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.Mock.Validate()
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, summary io.Writer) error {
	cfg, showVersion, err := load(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Line(toolName))
		return nil
	}

	app, err := bootstrap.NewApp(cfg, bootstrap.WithSummary(summary))
	if err != nil {
		return err
	}

	mock := mockserver.New(cfg.Mock, app.Components, app.Logger)
	if err := app.RegisterComponent(mock.Component()); err != nil {
		return err
	}
	return app.Run(ctx)
}

func load(args []string) (*Config, bool, error) {
	f := promptprobe.NewFlags(toolName)
	f.String("host", "", "listen host (default 127.0.0.1)")
	f.Int("port", 0, fmt.Sprintf("listen port (default %d)", mockserver.DefaultPort))
	f.Duration("latency", 0, "delay before the first byte of every completion")
	f.Duration("fragment-delay", 0, "delay between streamed frames")
	f.Float64("failure-rate", 0, "share of completions answered with --failure-status")
	f.Int("failure-status", 0, "status of injected failures (default 500)")
	f.String("reply", "", "reply mode: echo or lorem")
	f.String("key", "", "bearer credential clients must present")
	f.Bind("host", "mock.server.host")
	f.Bind("port", "mock.server.port")
	f.Bind("latency", "mock.latency")
	f.Bind("fragment-delay", "mock.fragment_delay")
	f.Bind("failure-rate", "mock.failure_rate")
	f.Bind("failure-status", "mock.failure_status")
	f.Bind("reply", "mock.reply")
	f.Bind("key", "mock.key")
	if err := f.Parse(args); err != nil {
		return nil, false, err
	}
	if f.ShowVersion {
		return nil, true, nil
	}

	opts := []config.LoaderOption{
		config.WithDefaults(map[string]any{"name": toolName, "environment": "development"}),
		config.WithFlags(f.FlagSet, f.Keys()),
	}
	if f.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(f.ConfigFile))
	}
	if f.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(f.EnvFile))
	}

	var cfg Config
	if err := config.LoadConfig(toolName, &cfg, opts...); err != nil {
		return nil, false, err
	}
	return &cfg, false, nil
}
