package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kbukum/promptprobe/httpclient"
	"github.com/kbukum/promptprobe/httpclient/rest"
	"github.com/kbukum/promptprobe/logger"
)

// Sentinel errors.
var (
	ErrNoDialect    = errors.New("llm: dialect is required")
	ErrNoStreamBody = errors.New("llm: expected stream body but got nil")
)

// RequestIDHeader carries the per-submission request id taken from the context.
const RequestIDHeader = "X-Request-Id"

// Adapter is a config-driven LLM client that works with any provider via the Dialect pattern.
//
// It composes the REST client (which wraps the pooled HTTP client) with a Dialect that
// handles provider-specific request/response mapping. One Adapter is safe for
// concurrent use and every call shares its connection pool.
//
// Adapter implements:
//   - provider.RequestResponse[CompletionRequest, CompletionResponse]
//   - provider.Streamable[CompletionRequest, CompletionResponse, StreamChunk]
//   - provider.Closeable
type Adapter struct {
	rest          *rest.Client
	dialect       Dialect
	model         string
	defaults      Sampling
	routingHeader string
	log           *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for stream diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.applyDefaults()

	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	return newAdapter(dialect, cfg, opts...)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
// Use this when you don't want to rely on the global dialect registry.
func NewWithDialect(dialect Dialect, cfg Config, opts ...Option) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.applyDefaults()
	if cfg.Name == "" {
		cfg.Name = dialect.Name() + "-llm"
	}
	return newAdapter(dialect, cfg, opts...)
}

func newAdapter(dialect Dialect, cfg Config, opts ...Option) (*Adapter, error) {
	restCfg := httpclient.Config{
		Name:                cfg.Name,
		BaseURL:             cfg.BaseURL,
		Timeout:             cfg.Timeout,
		Auth:                cfg.Auth,
		Headers:             cfg.Headers,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		HTTP2:               cfg.HTTP2,
		TLS:                 cfg.TLS,
	}
	client, err := rest.New(restCfg)
	if err != nil {
		return nil, fmt.Errorf("llm: create rest client: %w", err)
	}

	a := &Adapter{
		rest:          client,
		dialect:       dialect,
		model:         cfg.Model,
		defaults:      cfg.Defaults,
		routingHeader: cfg.RoutingHeader,
		log:           logger.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent(cfg.Name)
	return a, nil
}

// --- provider.Provider interface ---

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.rest.Name() }

// IsAvailable checks if the LLM provider is reachable through the dialect's
// health endpoint. Dialects without one are assumed available.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	hp := a.dialect.HealthPath()
	if hp == "" {
		return true
	}
	_, err := rest.Get[json.RawMessage](ctx, a.rest, hp)
	return err == nil
}

// --- provider.Closeable interface ---

// Close releases pooled connections.
func (a *Adapter) Close(ctx context.Context) error { return a.rest.Close(ctx) }

// --- provider.RequestResponse[CompletionRequest, CompletionResponse] interface ---

// Execute sends a completion request and returns the full response.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	req = a.withDefaults(req)
	req.Stream = false

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := rest.Post[json.RawMessage](ctx, a.rest, a.dialect.ChatPath(), body,
		rest.WithHeaders(a.requestHeaders(ctx, req.Model)))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: execute: %w", err)
	}

	result, err := a.dialect.ParseResponse(resp.Data)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: parse response: %w", err)
	}
	return *result, nil
}

// --- provider.Streamable streaming ---

// Stream sends a completion request and returns a channel of streamed chunks.
// The channel is closed when the stream ends or an error occurs. A failure
// after the response started is delivered as a final chunk with Err set.
func (a *Adapter) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	req = a.withDefaults(req)
	req.Stream = true

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return nil, fmt.Errorf("llm: build stream request: %w", err)
	}

	headers := a.requestHeaders(ctx, req.Model)
	headers["Content-Type"] = "application/json"
	headers["Accept"] = "text/event-stream"

	streamResp, err := a.rest.HTTP().DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    a.dialect.ChatPath(),
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: stream: %w", err)
	}

	ch := make(chan StreamChunk)
	go a.readStream(ctx, streamResp, ch)
	return ch, nil
}

// --- Accessors ---

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Model returns the adapter's default model.
func (a *Adapter) Model() string { return a.model }

// REST returns the underlying REST client for advanced use cases.
func (a *Adapter) REST() *rest.Client { return a.rest }

// --- internal ---

// withDefaults fills unset fields from the adapter config. req is a copy, and
// pointer fields are only ever replaced, never written through.
func (a *Adapter) withDefaults(req CompletionRequest) CompletionRequest {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == nil {
		req.Temperature = a.defaults.Temperature
	}
	if req.TopP == nil {
		req.TopP = a.defaults.TopP
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.defaults.MaxTokens
	}
	if req.FrequencyPenalty == nil {
		req.FrequencyPenalty = a.defaults.FrequencyPenalty
	}
	if req.PresencePenalty == nil {
		req.PresencePenalty = a.defaults.PresencePenalty
	}
	return req
}

func (a *Adapter) requestHeaders(ctx context.Context, model string) map[string]string {
	headers := make(map[string]string, 4)
	if a.routingHeader != "" && model != "" {
		headers[a.routingHeader] = model
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		headers[RequestIDHeader] = id
	}
	return headers
}
