package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	apperrors "github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the tool emitting metrics.
	ServiceName string
	// ServiceVersion is the build version.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on exit; shutdown performs
// a final export, which matters for short-lived tools.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the OpenTelemetry instruments for submissions and provider calls.
// It satisfies fanout.Observer.
type Metrics struct {
	submissionTotal    metric.Int64Counter
	submissionDuration metric.Float64Histogram
	submissionActive   metric.Int64UpDownCounter
	responseChars      metric.Int64Counter
	operationTotal     metric.Int64Counter
	operationDuration  metric.Float64Histogram
	errorTotal         metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	submissionTotal, err := meter.Int64Counter("submission.total",
		metric.WithDescription("Total number of completed submissions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submission.total counter: %w", err)
	}

	submissionDuration, err := meter.Float64Histogram("submission.duration",
		metric.WithDescription("Duration of submissions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submission.duration histogram: %w", err)
	}

	submissionActive, err := meter.Int64UpDownCounter("submission.active",
		metric.WithDescription("Number of submissions in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating submission.active gauge: %w", err)
	}

	responseChars, err := meter.Int64Counter("response.chars",
		metric.WithDescription("Characters of response text received"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating response.chars counter: %w", err)
	}

	operationTotal, err := meter.Int64Counter("operation.total",
		metric.WithDescription("Total number of provider operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("operation.duration",
		metric.WithDescription("Duration of provider operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		submissionTotal:    submissionTotal,
		submissionDuration: submissionDuration,
		submissionActive:   submissionActive,
		responseChars:      responseChars,
		operationTotal:     operationTotal,
		operationDuration:  operationDuration,
		errorTotal:         errorTotal,
	}, nil
}

// SubmissionStarted increments the in-flight count.
func (m *Metrics) SubmissionStarted(ctx context.Context, _ int) {
	m.submissionActive.Add(ctx, 1)
}

// SubmissionFinished decrements the in-flight count and records the outcome.
func (m *Metrics) SubmissionFinished(ctx context.Context, _ int, chars int, duration time.Duration, err error) {
	outcome := Outcome(err)
	m.submissionActive.Add(ctx, -1)
	m.submissionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.submissionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("outcome", outcome)))
	if chars > 0 {
		m.responseChars.Add(ctx, int64(chars))
	}
	if err != nil {
		m.RecordError(ctx, outcome, "fanout")
	}
}

// RecordOperation records a provider operation.
func (m *Metrics) RecordOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.operationTotal.Add(ctx, 1, attrs)
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}

// Outcome labels a result: "ok" for nil, otherwise the lower-cased error code.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return outcomeLabels[apperrors.CodeOf(err)]
}

var outcomeLabels = map[apperrors.ErrorCode]string{
	apperrors.ErrCodeTransportFailed: "transport_failed",
	apperrors.ErrCodeHTTPStatus:      "http_status",
	apperrors.ErrCodeTimeout:         "timeout",
	apperrors.ErrCodeCanceled:        "canceled",
	apperrors.ErrCodeMalformedFrame:  "malformed_frame",
	apperrors.ErrCodeConfigInvalid:   "config_invalid",
	apperrors.ErrCodePromptInvalid:   "prompt_invalid",
	apperrors.ErrCodeInternal:        "internal",
}
