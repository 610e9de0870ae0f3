// Package openai implements the llm.Dialect for OpenAI-compatible
// chat-completion APIs (OpenAI, Targon, vLLM and most hosted gateways).
//
// Import it for side-effect registration:
//
//	import _ "github.com/kbukum/promptprobe/llm/openai"
package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/promptprobe/httpclient/sse"
	"github.com/kbukum/promptprobe/llm"
)

// DialectName is the registered name for this dialect.
const DialectName = "openai"

// ErrNoChoices is returned when a response carries an empty choices array.
var ErrNoChoices = errors.New("openai: response has no choices")

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm types to the OpenAI chat-completion wire format.
type Dialect struct{}

// Name returns "openai".
func (d *Dialect) Name() string { return DialectName }

// ChatPath returns the chat-completion endpoint, relative to a base URL ending in /v1.
func (d *Dialect) ChatPath() string { return "/chat/completions" }

// HealthPath returns the model listing endpoint.
func (d *Dialect) HealthPath() string { return "/models" }

// chatRequest is the request body. Sampling fields are pointers so an
// explicit zero is sent while an unset value is omitted.
type chatRequest struct {
	Model            string              `json:"model"`
	Messages         []llm.Message       `json:"messages"`
	Stream           bool                `json:"stream"`
	Temperature      *float64            `json:"temperature,omitempty"`
	TopP             *float64            `json:"top_p,omitempty"`
	MaxTokens        int                 `json:"max_tokens,omitempty"`
	FrequencyPenalty *float64            `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64            `json:"presence_penalty,omitempty"`
	Tools            []llm.Tool          `json:"tools,omitempty"`
	ToolChoice       any                 `json:"tool_choice,omitempty"`
	ResponseFormat   *llm.ResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *llm.Usage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatMessage struct {
	Role      string         `json:"role"`
	Content   *string        `json:"content"`
	ToolCalls []llm.ToolCall `json:"tool_calls,omitempty"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// BuildRequest maps a CompletionRequest to the JSON body. A SystemPrompt is
// prepended to a new messages slice; req.Messages is never modified. Extra
// keys are merged into the top-level object.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	messages := req.Messages
	if req.SystemPrompt != "" {
		messages = make([]llm.Message, 0, len(req.Messages)+1)
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: req.SystemPrompt})
		messages = append(messages, req.Messages...)
	}
	if messages == nil {
		messages = []llm.Message{}
	}

	body := chatRequest{
		Model:            req.Model,
		Messages:         messages,
		Stream:           req.Stream,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		MaxTokens:        req.MaxTokens,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		Tools:            req.Tools,
		ToolChoice:       req.ToolChoice,
		ResponseFormat:   req.ResponseFormat,
	}
	if len(req.Extra) == 0 {
		return body, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}
	merged := make(map[string]any, len(req.Extra)+8)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, fmt.Errorf("openai: merge extra fields: %w", err)
	}
	for k, v := range req.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return merged, nil
}

// ParseResponse decodes choices[0].message.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	choice := resp.Choices[0]
	out := &llm.CompletionResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		ToolCalls:    choice.Message.ToolCalls,
		FinishReason: choice.FinishReason,
	}
	if choice.Message.Content != nil {
		out.Content = *choice.Message.Content
	}
	if resp.Usage != nil {
		out.Usage = *resp.Usage
	}
	return out, nil
}

// ParseStreamChunk extracts choices[0].delta.content from one frame. A null
// or missing delta, or a frame with no choices (usage-only trailers), yields
// an empty fragment.
func (d *Dialect) ParseStreamChunk(data []byte) (string, bool, error) {
	payload := strings.TrimSpace(string(data))
	if payload == sse.DoneSentinel {
		return "", true, nil
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false, fmt.Errorf("openai: decode stream frame: %w", err)
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == nil {
		return "", false, nil
	}
	return *chunk.Choices[0].Delta.Content, false, nil
}
