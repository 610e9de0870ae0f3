// Package llm provides a config-driven chat-completion client built on the
// httpclient and rest packages.
//
// The adapter talks to a provider through the Dialect pattern, similar to how
// database/sql works with driver packages. The openai dialect covers every
// OpenAI-compatible endpoint (OpenAI, Targon, vLLM, the local mock server).
//
// # Architecture
//
// The llm package provides:
//   - Universal types: [CompletionRequest], [CompletionResponse], [StreamChunk], [Message], [Tool], [Usage]
//   - [Dialect] interface: maps universal types to/from provider-specific HTTP format
//   - [Adapter]: composes the REST client + a Dialect to create a complete LLM client
//   - Dialect registry: [RegisterDialect] / [GetDialect] for config-driven dialect selection
//   - Stream helpers: [Collect], [CollectFunc]
//   - [ExtractJSON] for json_object replies wrapped in a markdown fence
//
// # Usage
//
//	import (
//	    "github.com/kbukum/promptprobe/llm"
//	    _ "github.com/kbukum/promptprobe/llm/openai" // registers "openai"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect:       "openai",
//	    BaseURL:       "https://api.targon.com/v1",
//	    Model:         "deepseek-ai/DeepSeek-V3-0324",
//	    RoutingHeader: "X-Targon-Model",
//	    Auth:          httpclient.BearerAuth(os.Getenv("TARGON_API_KEY")),
//	})
//
//	ch, err := adapter.Stream(ctx, llm.CompletionRequest{
//	    Messages: []llm.Message{{Role: llm.RoleUser, Content: "Hello!"}},
//	})
//	text, err := llm.Collect(ch)
//
// # Streams
//
// Stream frames are decoded lazily, one per "data:" line. The "[DONE]" sentinel
// ends the stream. A frame that fails to decode, or one longer than
// sse.MaxFrameSize, is logged at debug level and skipped; the stream continues
// with the next frame.
package llm
