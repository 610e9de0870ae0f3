// Package metrics keeps a Prometheus report of one tool run and writes it in
// the text exposition format, ready for a node-exporter textfile collector.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kbukum/promptprobe/observability"
)

const namespace = "promptprobe"

// Report collects per-submission metrics. It implements fanout.Observer.
type Report struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	chars     prometheus.Counter
	inFlight  prometheus.Gauge
	lastRunTS prometheus.Gauge
}

// NewReport creates a report on its own registry. tool and model become
// constant labels on every series.
func NewReport(tool, model string) *Report {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"tool": tool, "model": model}

	return &Report{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "requests_total",
			Help:        "Completion requests by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "request_duration_seconds",
			Help:        "Completion request duration in seconds, including the full stream.",
			ConstLabels: labels,
			Buckets:     []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"outcome"}),
		chars: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "response_chars_total",
			Help:        "Bytes of response text received.",
			ConstLabels: labels,
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "requests_in_flight",
			Help:        "Completion requests currently open.",
			ConstLabels: labels,
		}),
		lastRunTS: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the report was last written.",
			ConstLabels: labels,
		}),
	}
}

// SubmissionStarted implements fanout.Observer.
func (r *Report) SubmissionStarted(_ context.Context, _ int) {
	r.inFlight.Inc()
}

// SubmissionFinished implements fanout.Observer.
func (r *Report) SubmissionFinished(_ context.Context, _ int, chars int, d time.Duration, err error) {
	r.inFlight.Dec()
	outcome := observability.Outcome(err)
	r.requests.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(d.Seconds())
	if chars > 0 {
		r.chars.Add(float64(chars))
	}
}

// Gatherer exposes the report's registry.
func (r *Report) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the report to path. The file is written to a temporary
// name and renamed, so a collector never reads a partial report.
func (r *Report) WriteTextfile(path string) error {
	r.lastRunTS.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
