package fanout

import (
	"context"
	"time"
)

// Observer is notified as submissions start and finish. Calls arrive from
// many goroutines at once, so implementations must be safe for concurrent use.
// observability.Metrics and metrics.Report both implement it.
type Observer interface {
	// SubmissionStarted is called once a submission holds its concurrency slot.
	SubmissionStarted(ctx context.Context, index int)
	// SubmissionFinished is called with the response size in bytes of text,
	// the task duration, and the submission's error.
	SubmissionFinished(ctx context.Context, index int, chars int, duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) SubmissionStarted(context.Context, int)                            {}
func (nopObserver) SubmissionFinished(context.Context, int, int, time.Duration, error) {}

type multiObserver []Observer

func (m multiObserver) SubmissionStarted(ctx context.Context, index int) {
	for _, o := range m {
		o.SubmissionStarted(ctx, index)
	}
}

func (m multiObserver) SubmissionFinished(ctx context.Context, index int, chars int, d time.Duration, err error) {
	for _, o := range m {
		o.SubmissionFinished(ctx, index, chars, d, err)
	}
}
