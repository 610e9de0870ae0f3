// Package prompt generates the synthetic long prompt and stores it as a
// single {role, content} message file.
package prompt

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/validation"
)

// Generation defaults. The word target is roughly the token budget of a
// 128k-context model; the character cap assumes four characters per token.
const (
	DefaultSentence = "Explain planes, cars, bikes, and trains in detail. "
	DefaultWords    = 15000
	DefaultMaxChars = 512000
)

// ErrInvalidPrompt is wrapped by every Load failure caused by file content.
var ErrInvalidPrompt = stderrors.New("invalid prompt")

var roles = []string{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant}

// Options controls Generate. Zero fields take the defaults.
type Options struct {
	Sentence string
	Words    int
	MaxChars int
}

func (o *Options) applyDefaults() {
	if o.Sentence == "" {
		o.Sentence = DefaultSentence
	}
	if o.Words <= 0 {
		o.Words = DefaultWords
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
}

// Generate repeats the sentence until the word target is passed, joins the
// copies with single spaces and cuts the result to MaxChars characters.
func Generate(opts Options) llm.Message {
	opts.applyDefaults()

	perSentence := len(strings.Fields(opts.Sentence))
	if perSentence == 0 {
		perSentence = 1
	}
	repeats := opts.Words/perSentence + 1

	content := strings.Join(repeatSlice(opts.Sentence, repeats), " ")
	if r := []rune(content); len(r) > opts.MaxChars {
		content = string(r[:opts.MaxChars])
	}
	return llm.Message{Role: llm.RoleUser, Content: content}
}

// Repeats reports how many copies of sentence Generate uses for words.
func Repeats(sentence string, words int) int {
	opts := Options{Sentence: sentence, Words: words}
	opts.applyDefaults()
	return opts.Words/max(len(strings.Fields(opts.Sentence)), 1) + 1
}

func repeatSlice(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// file is the on-disk shape: exactly one message.
type file struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Save writes msg to path as a JSON {role, content} object.
func Save(path string, msg llm.Message) error {
	data, err := json.Marshal(file{Role: msg.Role, Content: msg.Content})
	if err != nil {
		return fmt.Errorf("prompt: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("prompt: write %s: %w", path, err)
	}
	return nil
}

// Load reads the message stored at path. Every failure is a PROMPT_INVALID
// AppError; content problems also match ErrInvalidPrompt.
func Load(path string) (llm.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llm.Message{}, errors.PromptInvalid(path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return llm.Message{}, errors.PromptInvalid(path, fmt.Errorf("%w: %v", ErrInvalidPrompt, err))
	}

	v := validation.New()
	v.Required("role", f.Role)
	if f.Role != "" {
		v.OneOf("role", f.Role, roles)
	}
	if err := v.Err(); err != nil {
		return llm.Message{}, errors.PromptInvalid(path, fmt.Errorf("%w: %v", ErrInvalidPrompt, err))
	}

	return llm.Message{Role: f.Role, Content: f.Content}, nil
}
