package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/resilience"
)

// ErrInvalidCount is returned by Run when asked for fewer than one submission.
var ErrInvalidCount = errors.New("fanout: count must be at least 1")

// Task performs submission number index. Every submission of a run calls the
// same Task, so anything it captures must be safe to share read-only.
type Task[T any] func(ctx context.Context, index int) (T, error)

// Result is the terminal state of one submission.
type Result[T any] struct {
	// Index is the submission's position, 0..n-1.
	Index int
	// RequestID is the id sent as X-Request-Id and logged with every line.
	RequestID string
	// Value is the task's output. A failed stream keeps the text received
	// before the failure.
	Value T
	// Err is the submission's own failure, if any.
	Err error
	// Duration is the wall time of the task call, excluding any wait for a
	// concurrency slot.
	Duration time.Duration
}

// OK reports whether the submission succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Run starts n submissions of task at once and waits for every one of them
// to reach a terminal state. results[i] always belongs to submission i no
// matter the completion order. A failing or panicking submission never
// cancels its siblings; its error is reported on its own Result.
//
// The returned error is non-nil only for invalid arguments.
func Run[T any](ctx context.Context, n int, task Task[T], opts ...Option) ([]Result[T], error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}
	if task == nil {
		return nil, errors.New("fanout: task is required")
	}
	o := newOptions(opts)

	var bh *resilience.Bulkhead
	if o.concurrency > 0 && o.concurrency < n {
		bh = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "fanout",
			MaxConcurrent: o.concurrency,
		})
	}

	o.log.Debug("fan-out starting", logger.Fields(logger.FieldCount, n, "concurrency", o.concurrency))

	results := make([]Result[T], n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(index int) {
			defer wg.Done()
			results[index] = submit(ctx, index, task, bh, o)
		}(i)
	}
	wg.Wait()

	return results, nil
}

// submit runs one submission. It only writes to its own Result. The span
// and Duration both cover the call itself, not the wait for a bulkhead slot.
func submit[T any](ctx context.Context, index int, task Task[T], bh *resilience.Bulkhead, o *options) Result[T] {
	res := Result[T]{Index: index, RequestID: uuid.NewString()}

	ctx = logger.ContextWithRequestID(ctx, res.RequestID)
	ctx = logger.ContextWithIndex(ctx, index)

	run := func() {
		ctx, span := observability.StartSpan(ctx, observability.SpanSubmit)
		defer span.End()
		observability.SetSpanAttribute(ctx, observability.AttrIndex, index)
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, res.RequestID)

		o.observer.SubmissionStarted(ctx, index)
		start := time.Now()
		res.Value, res.Err = call(ctx, index, task)
		res.Duration = time.Since(start)
		o.observer.SubmissionFinished(ctx, index, sizeOf(res.Value), res.Duration, res.Err)
		report(ctx, &res, o)
	}

	if bh == nil {
		run()
		return res
	}
	if err := bh.Execute(ctx, func() error { run(); return nil }); err != nil {
		res.Err = fmt.Errorf("fanout: waiting for a slot: %w", err)
		report(ctx, &res, o)
	}
	return res
}

// report logs the outcome of res and annotates the span in ctx, if any.
func report[T any](ctx context.Context, res *Result[T], o *options) {
	log := o.log.WithContext(ctx)
	if res.Err != nil {
		code := apperrors.CodeOf(res.Err)
		observability.SetSpanError(ctx, res.Err)
		observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(code))
		fields := logger.DurationFields("submit", res.Duration)
		fields[logger.FieldErrorCode] = code
		log.Warn("submission failed", logger.MergeWithError(fields, res.Err))
		return
	}
	chars := sizeOf(res.Value)
	observability.SetSpanAttribute(ctx, observability.AttrChars, chars)
	fields := logger.DurationFields("submit", res.Duration)
	fields[logger.FieldChars] = chars
	log.Debug("submission finished", fields)
}

// call invokes task, turning a panic into an INTERNAL_ERROR for this index.
func call[T any](ctx context.Context, index int, task Task[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Internal(fmt.Errorf("submission %d panicked: %v", index, r))
		}
	}()
	return task(ctx, index)
}

// sizeOf measures text-like values for logs and metrics.
func sizeOf(v any) int {
	switch x := v.(type) {
	case string:
		return len(x)
	case []byte:
		return len(x)
	case interface{ Len() int }:
		return x.Len()
	default:
		return 0
	}
}
