// Package resilience provides the concurrency limiter used by the fan-out.
//
// A Bulkhead bounds how many submissions are in flight at once. By default
// callers over the limit queue until a slot frees up or their context ends:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "fanout", MaxConcurrent: 4})
//	err := bh.Execute(ctx, func() error {
//	    return submit(ctx)
//	})
//
// There is no retry, circuit breaker, or rate limiter: a failed
// request is reported for the unit of work it belongs to and never replayed.
package resilience
