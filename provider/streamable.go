package provider

import "context"

// Streamable is a RequestResponse provider that can also deliver its output
// incrementally. llm.Adapter is the implementation: Execute returns the whole
// completion, Stream yields content deltas as the server sends them.
//
// I is the request type, O the complete response, C the streamed chunk.
type Streamable[I, O, C any] interface {
	RequestResponse[I, O]
	// Stream returns a channel that is closed when the stream ends. Failures
	// after the call returns arrive as a final chunk value carrying the error.
	Stream(ctx context.Context, input I) (<-chan C, error)
}
