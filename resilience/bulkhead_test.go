package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// holdSlot occupies one slot of b until the returned release func is called.
func holdSlot(t *testing.T, b *Bulkhead) (release func()) {
	t.Helper()
	started := make(chan struct{})
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		b.Execute(context.Background(), func() error {
			close(started)
			<-done
			return nil
		})
	}()
	<-started
	return func() {
		close(done)
		<-finished
	}
}

func TestBulkhead_AllowsRequestsWithinLimit(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 3})

	var callCount int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				atomic.AddInt32(&callCount, 1)
				time.Sleep(10 * time.Millisecond)
				return nil
			})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		}()
	}
	wg.Wait()

	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestBulkhead_QueuesBeyondLimit(t *testing.T) {
	const limit, total = 2, 8
	b := NewBulkhead(BulkheadConfig{Name: "fanout", MaxConcurrent: limit})

	var inFlight, peak, ran int32
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				atomic.AddInt32(&ran, 1)
				return nil
			})
			if err != nil {
				t.Errorf("queued call should not fail: %v", err)
			}
		}()
	}
	wg.Wait()

	if ran != total {
		t.Errorf("ran %d calls, want %d", ran, total)
	}
	if peak > limit {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, limit)
	}
}

func TestBulkhead_RejectsWhenFull_NegativeWait(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: -1})
	release := holdSlot(t, b)
	defer release()

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("expected ErrBulkheadFull, got %v", err)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: 500 * time.Millisecond})

	started := make(chan struct{})
	go func() {
		b.Execute(context.Background(), func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	}()
	<-started

	start := time.Now()
	if err := b.Execute(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("expected some wait time, got %v", elapsed)
	}
}

func TestBulkhead_TimesOutWaiting(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: 10 * time.Millisecond})
	release := holdSlot(t, b)
	defer release()

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("expected ErrBulkheadTimeout, got %v", err)
	}
}

func TestBulkhead_RespectsContext(t *testing.T) {
	tests := []struct {
		name    string
		maxWait time.Duration
	}{
		{"unbounded wait", 0},
		{"bounded wait", time.Second},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBulkhead(BulkheadConfig{Name: "test", MaxConcurrent: 1, MaxWait: tc.maxWait})
			release := holdSlot(t, b)
			defer release()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			called := false
			err := b.Execute(ctx, func() error {
				called = true
				return nil
			})
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected context.DeadlineExceeded, got %v", err)
			}
			if called {
				t.Error("fn must not run without a slot")
			}
		})
	}
}

func TestBulkhead_Callbacks(t *testing.T) {
	var acquired, released, rejected int32

	b := NewBulkhead(BulkheadConfig{
		Name:          "test",
		MaxConcurrent: 1,
		MaxWait:       -1,
		OnAcquire:     func(string) { atomic.AddInt32(&acquired, 1) },
		OnRelease:     func(string) { atomic.AddInt32(&released, 1) },
		OnReject:      func(string) { atomic.AddInt32(&rejected, 1) },
	})

	release := holdSlot(t, b)
	_ = b.Execute(context.Background(), func() error { return nil })
	release()

	if got := atomic.LoadInt32(&acquired); got != 1 {
		t.Errorf("expected 1 acquire callback, got %d", got)
	}
	if got := atomic.LoadInt32(&released); got != 1 {
		t.Errorf("expected 1 release callback, got %d", got)
	}
	if got := atomic.LoadInt32(&rejected); got != 1 {
		t.Errorf("expected 1 reject callback, got %d", got)
	}
}

func TestNewBulkhead_DefaultsLimit(t *testing.T) {
	if got := cap(NewBulkhead(BulkheadConfig{}).sem); got != 10 {
		t.Errorf("slots = %d, want 10", got)
	}
}
