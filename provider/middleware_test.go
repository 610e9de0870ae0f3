package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"

	apperrors "github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/provider"
)

type echoProvider struct {
	name   string
	closed bool
}

func (p *echoProvider) Name() string                       { return p.name }
func (p *echoProvider) IsAvailable(_ context.Context) bool { return true }
func (p *echoProvider) Execute(_ context.Context, in string) (string, error) {
	return "echo:" + in, nil
}
func (p *echoProvider) Close(_ context.Context) error {
	p.closed = true
	return nil
}

type failingProvider struct{}

func (p *failingProvider) Name() string                       { return "fail" }
func (p *failingProvider) IsAvailable(_ context.Context) bool { return false }
func (p *failingProvider) Execute(_ context.Context, _ string) (string, error) {
	return "", apperrors.HTTPStatus(503, "")
}

// --- Chain tests ---

func TestChain_Empty(t *testing.T) {
	p := &echoProvider{name: "test"}
	wrapped := provider.Chain[string, string]()(p)
	if wrapped.Name() != "test" {
		t.Fatalf("expected 'test', got %q", wrapped.Name())
	}
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChain_Order(t *testing.T) {
	// Verify middlewares execute in order: first is outermost
	var order []string

	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return &orderTracker[string, string]{inner: inner, tag: tag, order: &order}
		}
	}

	p := &echoProvider{name: "test"}
	wrapped := provider.Chain(mw("A"), mw("B"), mw("C"))(p)

	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "C:before", "C:after", "B:after", "A:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain_SkipsNil(t *testing.T) {
	var order []string
	var mw provider.Middleware[string, string] = func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
		return &orderTracker[string, string]{inner: inner, tag: "A", order: &order}
	}

	wrapped := provider.Chain(nil, mw, nil)(&echoProvider{name: "test"})
	result, err := wrapped.Execute(context.Background(), "x")
	if err != nil || result != "echo:x" {
		t.Fatalf("expected echo:x, got %q, err %v", result, err)
	}
	if strings.Join(order, ",") != "A:before,A:after" {
		t.Errorf("order = %v", order)
	}
}

type orderTracker[I, O any] struct {
	inner provider.RequestResponse[I, O]
	tag   string
	order *[]string
}

func (o *orderTracker[I, O]) Name() string                         { return o.inner.Name() }
func (o *orderTracker[I, O]) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker[I, O]) Execute(ctx context.Context, input I) (O, error) {
	*o.order = append(*o.order, o.tag+":before")
	result, err := o.inner.Execute(ctx, input)
	*o.order = append(*o.order, o.tag+":after")
	return result, err
}

// --- WithLogging tests ---

func TestWithLogging_Success(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "probe", &buf)
	wrapped := provider.WithLogging[string, string](log)(&echoProvider{name: "log-test"})

	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("got %q, %v", result, err)
	}
	if !strings.Contains(buf.String(), "provider execute ok") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestWithLogging_ErrorCarriesCode(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: logger.FormatJSON}, "probe", &buf)
	ctx := logger.ContextWithRequestID(context.Background(), "req-9")
	wrapped := provider.WithLogging[string, string](log)(&failingProvider{})

	if _, err := wrapped.Execute(ctx, "hello"); err == nil {
		t.Fatal("expected error")
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if line[logger.FieldErrorCode] != string(apperrors.ErrCodeHTTPStatus) {
		t.Errorf("error_code = %v", line[logger.FieldErrorCode])
	}
	if line[logger.FieldRequestID] != "req-9" {
		t.Errorf("request_id = %v", line[logger.FieldRequestID])
	}
}

func TestWithLogging_DelegatesIsAvailable(t *testing.T) {
	wrapped := provider.WithLogging[string, string](logger.NewNop())(&failingProvider{})
	if wrapped.IsAvailable(context.Background()) {
		t.Fatal("expected IsAvailable to delegate to inner provider")
	}
}

// --- WithTracing tests ---

func TestWithTracing(t *testing.T) {
	wrapped := provider.WithTracing[string, string]("probe")(&echoProvider{name: "trace-test"})
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("got %q, %v", result, err)
	}
	if wrapped.Name() != "trace-test" {
		t.Fatalf("expected name 'trace-test', got %q", wrapped.Name())
	}

	failing := provider.WithTracing[string, string]("probe")(&failingProvider{})
	if _, err := failing.Execute(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

// --- WithMetrics tests ---

func TestWithMetrics(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	wrapped := provider.WithMetrics[string, string](metrics)(&echoProvider{name: "metrics-test"})
	if result, err := wrapped.Execute(context.Background(), "hello"); err != nil || result != "echo:hello" {
		t.Fatalf("got %q, %v", result, err)
	}

	failing := provider.WithMetrics[string, string](metrics)(&failingProvider{})
	if _, err := failing.Execute(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

// --- Full composition ---

func TestChain_AllMiddlewares(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	wrapped := provider.Chain(
		provider.WithLogging[string, string](logger.NewNop()),
		provider.WithMetrics[string, string](metrics),
		provider.WithTracing[string, string]("probe"),
	)(&failingProvider{})

	_, err = wrapped.Execute(context.Background(), "hello")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 503 {
		t.Fatalf("error should pass through unchanged, got %v", err)
	}
}
