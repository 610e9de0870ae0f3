package provider

import "context"

// Closeable is optionally implemented by providers that hold resources
// requiring explicit cleanup, such as a pooled HTTP transport.
type Closeable interface {
	Close(ctx context.Context) error
}
