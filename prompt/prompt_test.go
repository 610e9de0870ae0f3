package prompt

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/llm"
)

func TestGenerate_Defaults(t *testing.T) {
	msg := Generate(Options{})

	if msg.Role != llm.RoleUser {
		t.Errorf("role = %q, want user", msg.Role)
	}
	if got := Repeats(DefaultSentence, DefaultWords); got != 1876 {
		t.Errorf("Repeats() = %d, want 1876", got)
	}
	if n := strings.Count(msg.Content, "Explain planes"); n != 1876 {
		t.Errorf("sentence appears %d times, want 1876", n)
	}
	want := 1876*len(DefaultSentence) + 1875
	if len(msg.Content) != want {
		t.Errorf("len = %d, want %d", len(msg.Content), want)
	}
	if !strings.HasPrefix(msg.Content, DefaultSentence+" "+DefaultSentence) {
		t.Errorf("copies should be joined by a single space: %q", msg.Content[:120])
	}
}

func TestGenerate_Options(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"word target", Options{Sentence: "a b", Words: 4}, "a b a b a b"},
		{"char cap", Options{Sentence: "abcdef", Words: 10, MaxChars: 5}, "abcde"},
		{"cap counts characters", Options{Sentence: "ééé", Words: 1, MaxChars: 4}, "ééé "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Generate(tc.opts).Content
			if got != tc.want {
				t.Errorf("Generate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.json")
	msg := Generate(Options{Words: 100})

	if err := Save(path, msg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Role != msg.Role || got.Content != msg.Content {
		t.Errorf("round trip mismatch: got role %q, %d chars", got.Role, len(got.Content))
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), `{"role":"user","content":"Explain`) {
		t.Errorf("unexpected file layout: %.60s", data)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantInvalid bool
	}{
		{"malformed json", `{"role": "user", "content": `, true},
		{"missing role", `{"content": "hi"}`, true},
		{"unknown role", `{"role": "robot", "content": "hi"}`, true},
		{"not an object", `["user", "hi"]`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prompt.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !stderrors.Is(err, ErrInvalidPrompt) {
				t.Errorf("expected ErrInvalidPrompt, got %v", err)
			}
			if errors.CodeOf(err) != errors.ErrCodePromptInvalid {
				t.Errorf("expected PROMPT_INVALID, got %s", errors.CodeOf(err))
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if errors.CodeOf(err) != errors.ErrCodePromptInvalid {
		t.Errorf("expected PROMPT_INVALID, got %v", err)
	}
	if stderrors.Is(err, ErrInvalidPrompt) {
		t.Error("a missing file is not a content problem")
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("expected the os error in the chain")
	}
}
