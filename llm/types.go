package llm

import "encoding/json"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role" yaml:"role"` // "system", "user", "assistant", "tool"
	Content string `json:"content" yaml:"content"`
	// Name optionally identifies the author of the message.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// ToolCalls carries the calls an assistant message asked for.
	ToolCalls []ToolCall `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`
	// ToolCallID links a tool message back to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty" yaml:"tool_call_id,omitempty"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names a function and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// DecodeArguments unmarshals the call's JSON arguments into v.
func (f FunctionCall) DecodeArguments(v any) error {
	return json.Unmarshal([]byte(f.Arguments), v)
}

// Tool declares a function the model may call.
type Tool struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

// FunctionDef describes a callable function with a JSON Schema for its parameters.
type FunctionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// FunctionTool is shorthand for a Tool of type "function".
func FunctionTool(name, description string, parameters map[string]any) Tool {
	return Tool{
		Type:     "function",
		Function: FunctionDef{Name: name, Description: description, Parameters: parameters},
	}
}

// ToolChoiceAuto lets the model decide whether to call a tool.
const ToolChoiceAuto = "auto"

// ForceTool returns a tool_choice value that requires the named function.
func ForceTool(name string) map[string]any {
	return map[string]any{
		"type":     "function",
		"function": map[string]any{"name": name},
	}
}

// ResponseFormat constrains the shape of the model's output.
type ResponseFormat struct {
	Type string `json:"type"`
}

// JSONObject requests a response that parses as a single JSON object.
var JSONObject = &ResponseFormat{Type: "json_object"}

// CompletionRequest is the universal input for all LLM providers.
// Adapters never modify a request's Messages slice, so one request value can
// be shared by any number of concurrent submissions.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty" yaml:"model"`
	// Messages is the conversation history.
	Messages []Message `json:"messages" yaml:"messages"`
	// SystemPrompt is prepended as a system message.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt"`
	// Temperature controls randomness. Nil means provider default.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature"`
	// TopP is the nucleus sampling cutoff. Nil means provider default.
	TopP *float64 `json:"top_p,omitempty" yaml:"top_p"`
	// MaxTokens limits the response length. 0 means provider default.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens"`
	// FrequencyPenalty penalizes repeated tokens. Nil means provider default.
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" yaml:"frequency_penalty"`
	// PresencePenalty penalizes tokens already present. Nil means provider default.
	PresencePenalty *float64 `json:"presence_penalty,omitempty" yaml:"presence_penalty"`
	// Stream requests streaming mode. Set automatically by Adapter.Stream().
	Stream bool `json:"stream,omitempty" yaml:"stream"`
	// Tools lists the functions the model may call.
	Tools []Tool `json:"tools,omitempty" yaml:"-"`
	// ToolChoice is "auto", "none", or a ForceTool value.
	ToolChoice any `json:"tool_choice,omitempty" yaml:"-"`
	// ResponseFormat constrains the output, e.g. JSONObject.
	ResponseFormat *ResponseFormat `json:"response_format,omitempty" yaml:"-"`
	// Extra holds provider-specific fields that don't fit the universal schema.
	// Dialects merge it into the request body.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra"`
}

// CompletionResponse is the universal output from all LLM providers.
type CompletionResponse struct {
	// ID is the provider's completion id.
	ID string `json:"id,omitempty"`
	// Content is the generated text.
	Content string `json:"content"`
	// ToolCalls are the function calls the model requested.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	// FinishReason reports why generation stopped ("stop", "length", "tool_calls").
	FinishReason string `json:"finish_reason,omitempty"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	// Usage reports token consumption.
	Usage Usage `json:"usage"`
}

// Message returns the response as an assistant message suitable for
// appending to a follow-up conversation.
func (r CompletionResponse) Message() Message {
	return Message{Role: RoleAssistant, Content: r.Content, ToolCalls: r.ToolCalls}
}

// StreamChunk is a single piece of a streamed response.
type StreamChunk struct {
	// Content is the text fragment. Empty when the frame carried no content.
	Content string `json:"content"`
	// Done indicates the end-of-stream sentinel was received.
	Done bool `json:"done"`
	// Err is set when the stream failed; it is always the last chunk.
	Err error `json:"-"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
