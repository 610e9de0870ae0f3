// Package fanout issues the same request many times concurrently and
// collects every outcome in submission order.
//
//	task := fanout.CompletionTask(adapter, req, fanout.CompletionOptions{Stream: true})
//	results, err := fanout.Run(ctx, 5, task, fanout.WithLogger(log))
//	for _, r := range results {
//	    fmt.Printf("Response %d: %s\n", r.Index+1, r.Value)
//	}
//
// Each submission runs in its own goroutine and writes only its own slot of
// the result slice. Submissions share the client's connection pool and the
// read-only request, nothing else. Failures stay with the index they belong
// to; there is no retry and no cancel-on-first-failure.
package fanout
