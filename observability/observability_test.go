package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/promptprobe/errors"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("fanout")

	if cfg.ServiceName != "fanout" {
		t.Errorf("expected ServiceName 'fanout', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("fanout")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := samplerFor(tc.rate).Description(); got != tc.want {
				t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestNewResource_NoSchemaConflict(t *testing.T) {
	res, err := newResource("fanout", "v1.2.3", "test")
	if err != nil {
		t.Fatalf("newResource() error: %v", err)
	}
	v, ok := res.Set().Value(attribute.Key(AttrServiceName))
	if !ok || v.AsString() != "fanout" {
		t.Errorf("service.name = %v, want fanout", v)
	}
}

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "fanout", "dev", "test", Config{})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error: %v", err)
	}
}

func TestSetup_Enabled(t *testing.T) {
	// Exporters connect lazily, so no collector is needed to initialize.
	shutdown, err := Setup(context.Background(), "fanout", "dev", "test", Config{
		Endpoint: "127.0.0.1:4318",
		Insecure: true,
	})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

func TestSetSpanAttributeAndError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanSubmit)
	SetSpanAttribute(ctx, AttrIndex, 2)
	SetSpanAttribute(ctx, AttrRequestID, "req-1")
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		got[kv.Key] = kv.Value
	}
	if got[AttrIndex].AsInt64() != 2 {
		t.Errorf("index attribute = %v", got[AttrIndex])
	}
	if got[AttrErrorMessage].AsString() != "boom" {
		t.Errorf("error.message attribute = %v", got[AttrErrorMessage])
	}
	if _, ok := got["unsupported-key"]; ok {
		t.Error("unsupported values should be ignored")
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(spans[0].Events))
	}
}

func TestSpanHelpersWithoutRecordingSpan(t *testing.T) {
	ctx := context.Background()
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil noop span")
	}
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestMetrics_Submissions(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		metrics.SubmissionStarted(ctx, i)
	}
	metrics.SubmissionFinished(ctx, 0, 10, 100*time.Millisecond, nil)
	metrics.SubmissionFinished(ctx, 1, 0, 5*time.Millisecond, apperrors.TransportFailed("http://x", fmt.Errorf("refused")))
	metrics.SubmissionFinished(ctx, 2, 5, 200*time.Millisecond, nil)

	data := collect(t, reader)

	total, ok := data["submission.total"].(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("submission.total missing: %v", data)
	}
	byOutcome := map[string]int64{}
	for _, dp := range total.DataPoints {
		v, _ := dp.Attributes.Value("outcome")
		byOutcome[v.AsString()] = dp.Value
	}
	if byOutcome["ok"] != 2 || byOutcome["transport_failed"] != 1 {
		t.Errorf("outcomes = %v", byOutcome)
	}

	chars := data["response.chars"].(metricdata.Sum[int64])
	if len(chars.DataPoints) != 1 || chars.DataPoints[0].Value != 15 {
		t.Errorf("response.chars = %+v", chars.DataPoints)
	}

	active := data["submission.active"].(metricdata.Sum[int64])
	if len(active.DataPoints) != 1 || active.DataPoints[0].Value != 0 {
		t.Errorf("submission.active should return to 0, got %+v", active.DataPoints)
	}
}

func TestMetrics_NoopMeter(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error: %v", err)
	}
	ctx := context.Background()
	metrics.RecordOperation(ctx, "openai-llm", "execute", "ok", 50*time.Millisecond)
	metrics.RecordError(ctx, "http_status", "probe")
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{apperrors.HTTPStatus(500, ""), "http_status"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
		{fmt.Errorf("x"), "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := Outcome(tc.err); got != tc.want {
				t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

type fakePinger struct {
	name string
	up   bool
}

func (f fakePinger) Name() string                       { return f.name }
func (f fakePinger) IsAvailable(_ context.Context) bool { return f.up }

func TestServiceHealth_Check(t *testing.T) {
	sh := NewServiceHealth("probe", "dev")
	sh.Check(context.Background(), fakePinger{name: "openai-llm", up: true})
	if sh.Status != HealthStatusUp {
		t.Errorf("status = %s, want up", sh.Status)
	}
	sh.Check(context.Background(), fakePinger{name: "mock", up: false})
	if sh.Status != HealthStatusDown {
		t.Errorf("status = %s, want down", sh.Status)
	}
	if len(sh.Components) != 2 || sh.Components[1].Message == "" {
		t.Errorf("components = %+v", sh.Components)
	}
}

func TestServiceHealth_DegradedDoesNotOverrideDown(t *testing.T) {
	sh := NewServiceHealth("svc", "1.0")
	sh.AddComponent(Health{Name: "a", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "b", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Errorf("status = %s, want down", sh.Status)
	}
}
