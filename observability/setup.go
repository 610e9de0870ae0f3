package observability

import (
	"context"
	"errors"
	"time"
)

// Config enables tracing and metrics export for a tool run. With an empty
// Endpoint nothing is initialized and the global no-op providers stay in place.
type Config struct {
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure   bool          `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64       `mapstructure:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `mapstructure:"interval" yaml:"interval"`
}

// Enabled reports whether an exporter endpoint is configured.
func (c Config) Enabled() bool { return c.Endpoint != "" }

// ShutdownFunc flushes and stops whatever Setup started.
type ShutdownFunc func(ctx context.Context) error

// Setup initializes the tracer and meter providers for service when cfg is
// enabled. The returned ShutdownFunc is never nil.
func Setup(ctx context.Context, service, version, environment string, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	tcfg := DefaultTracerConfig(service)
	tcfg.ServiceVersion = version
	tcfg.Environment = environment
	tcfg.Endpoint = cfg.Endpoint
	tcfg.Insecure = cfg.Insecure
	if cfg.SampleRate > 0 {
		tcfg.SampleRate = cfg.SampleRate
	}
	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		return nil, err
	}

	mcfg := DefaultMeterConfig(service)
	mcfg.ServiceVersion = version
	mcfg.Environment = environment
	mcfg.Endpoint = cfg.Endpoint
	mcfg.Insecure = cfg.Insecure
	if cfg.Interval > 0 {
		mcfg.Interval = cfg.Interval
	}
	mp, err := InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
