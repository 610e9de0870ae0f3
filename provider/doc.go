// Package provider defines the small interfaces shared by backends that the
// promptprobe tools call, plus composable middleware around them.
//
// Interaction patterns:
//   - RequestResponse[I, O]: one input → one output (a chat completion)
//   - Streamable[I, O, C]: RequestResponse plus a chunked Stream mode
//
// Opt-in lifecycle:
//   - Closeable: providers that hold resources (pooled connections)
//
// # Middleware
//
// Middleware[I, O] is a function that wraps a RequestResponse provider.
// Use Chain to compose multiple middlewares:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("probe"),
//	)(adapter)
package provider
