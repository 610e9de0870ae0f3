// Package server provides the HTTP server behind the mock provider, using
// Gin with HTTP/2 cleartext (h2c) support.
//
// The server follows the component pattern with lifecycle management,
// health endpoints, and a standard middleware stack.
//
// # Middleware
//
// Built-in middleware (server/middleware), applied to every handler:
//
//   - Recovery: Panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - BodySize: Request body size limits
//   - Logging: Request logging with duration tracking
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: Component health aggregation
//   - /version: Build version information
package server
