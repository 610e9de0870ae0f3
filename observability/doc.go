// Package observability provides OpenTelemetry tracing and metrics for the
// promptprobe tools.
//
// Export is opt-in. Setup does nothing unless an OTLP endpoint is configured,
// so spans and instruments fall back to the global no-op providers:
//
//	shutdown, err := observability.Setup(ctx, "fanout", version.Short(), "dev", cfg.Telemetry)
//	defer shutdown(ctx)
//
// Tracing:
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanSubmit)
//	defer span.End()
//
// Metrics (Metrics also satisfies fanout.Observer):
//
//	metrics, err := observability.NewMetrics(observability.Meter("fanout"))
//	results, err := fanout.Run(ctx, n, task, fanout.WithObserver(metrics))
//
// Health:
//
//	health := observability.NewServiceHealth("probe", version.Short())
//	health.Check(ctx, adapter)
package observability
