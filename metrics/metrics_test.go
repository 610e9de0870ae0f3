package metrics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/kbukum/promptprobe/errors"
)

func TestReport_Observer(t *testing.T) {
	r := NewReport("fanout", "deepseek-ai/DeepSeek-R1-trt")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r.SubmissionStarted(ctx, i)
	}
	if got := testutil.ToFloat64(r.inFlight); got != 3 {
		t.Errorf("in flight = %v, want 3", got)
	}

	r.SubmissionFinished(ctx, 0, 120, 300*time.Millisecond, nil)
	r.SubmissionFinished(ctx, 1, 0, 10*time.Millisecond, apperrors.TransportFailed("http://127.0.0.1:1", fmt.Errorf("refused")))
	r.SubmissionFinished(ctx, 2, 80, 200*time.Millisecond, nil)

	tests := []struct {
		outcome string
		want    float64
	}{
		{"ok", 2},
		{"transport_failed", 1},
		{"http_status", 0},
	}
	for _, tc := range tests {
		t.Run(tc.outcome, func(t *testing.T) {
			if got := testutil.ToFloat64(r.requests.WithLabelValues(tc.outcome)); got != tc.want {
				t.Errorf("requests{outcome=%q} = %v, want %v", tc.outcome, got, tc.want)
			}
		})
	}
	if got := testutil.ToFloat64(r.chars); got != 200 {
		t.Errorf("chars = %v, want 200", got)
	}
	if got := testutil.ToFloat64(r.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func TestReport_WriteTextfile(t *testing.T) {
	r := NewReport("fanout", "m")
	r.SubmissionStarted(context.Background(), 0)
	r.SubmissionFinished(context.Background(), 0, 42, time.Second, nil)

	path := filepath.Join(t.TempDir(), "promptprobe.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`promptprobe_requests_total{model="m",outcome="ok",tool="fanout"} 1`,
		`promptprobe_response_chars_total{model="m",tool="fanout"} 42`,
		`promptprobe_request_duration_seconds_count{model="m",outcome="ok",tool="fanout"} 1`,
		"promptprobe_last_run_timestamp_seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}

func TestReport_WriteTextfileBadPath(t *testing.T) {
	r := NewReport("fanout", "m")
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	if err == nil || !strings.Contains(err.Error(), "metrics: write") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}

func TestReport_Gatherer(t *testing.T) {
	r := NewReport("probe", "m")
	r.SubmissionFinished(context.Background(), 0, 1, time.Millisecond, nil)
	if n, err := testutil.GatherAndCount(r.Gatherer(), "promptprobe_requests_total"); err != nil || n != 1 {
		t.Errorf("GatherAndCount = %d, %v", n, err)
	}
}
