// Package httpclient provides the HTTP transport shared by every promptprobe
// tool: one pooled *http.Client with default headers, bearer authentication,
// optional HTTP/2 ping health checks, and status-code error classification.
//
// Subpackages provide protocol-specific layers:
//
//   - rest: JSON request/response helpers with generic typed decoding
//   - sse: Server-Sent Events frame reader
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.targon.com/v1",
//	    Auth:    httpclient.BearerAuth(os.Getenv("TARGON_API_KEY")),
//	})
//
//	stream, err := client.DoStream(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/chat/completions",
//	    Body:   payload,
//	})
//	defer stream.Close()
//	for {
//	    ev, err := stream.Events().Next()
//	    ...
//	}
//
// No retry, circuit breaking, or rate limiting is applied: every failure is
// classified once and returned to the caller.
package httpclient
