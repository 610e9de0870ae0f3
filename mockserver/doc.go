// Package mockserver is an OpenAI-compatible fake chat-completion provider.
//
// It serves POST /v1/chat/completions (streaming and non-streaming) and
// GET /v1/models on the shared gin + h2c server, with configurable latency,
// failure injection, and an echo or lorem reply. Tool definitions are
// answered with a tool call whose arguments are placeholders derived from the
// parameter schema, so the probe suite runs offline.
//
// cmd/mockllm runs it standalone; tests mount Handler on httptest servers.
package mockserver
