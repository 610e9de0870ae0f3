package provider

import "context"

// RequestResponse represents a provider that takes one input and returns one output.
// A non-streaming chat completion is the canonical example.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}
