package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "fanout", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-tool")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.tool != "test-tool" {
		t.Errorf("expected tool 'test-tool', got %q", l.tool)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "invalid-level", Format: FormatJSON}, "test", &buf)
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("invalid level should fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message to be written")
	}
}

func TestJSONOutputCarriesToolAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	l.Info("request finished", Fields(FieldIndex, 2, FieldChars, 10))

	m := decodeLine(t, &buf)
	if m["tool"] != "fanout" {
		t.Errorf("tool = %v, want fanout", m["tool"])
	}
	if m["message"] != "request finished" {
		t.Errorf("message = %v", m["message"])
	}
	if m[FieldIndex] != float64(2) {
		t.Errorf("index = %v, want 2", m[FieldIndex])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithIndex(ctx, 3)
	l.WithContext(ctx).Info("x")

	m := decodeLine(t, &buf)
	if m[FieldRequestID] != "req-1" {
		t.Errorf("request_id = %v, want req-1", m[FieldRequestID])
	}
	if m[FieldIndex] != float64(3) {
		t.Errorf("index = %v, want 3", m[FieldIndex])
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q", got)
	}
}

func TestWithContextEmpty(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf, "info").WithContext(context.Background()).Info("x")
	m := decodeLine(t, &buf)
	if _, ok := m[FieldRequestID]; ok {
		t.Error("expected no request_id for empty context")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "info")
	cl := l.WithComponent("llm")
	if cl.tool != "fanout" {
		t.Errorf("tool should be preserved, got %q", cl.tool)
	}
	cl.Warn("slow")
	m := decodeLine(t, &buf)
	if m[FieldComponent] != "llm" {
		t.Errorf("component = %v, want llm", m[FieldComponent])
	}
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn", m["level"])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, "debug")
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(fmt.Errorf("boom")).Debug("d")
	m := decodeLine(t, &buf)
	if m["key"] != "value" {
		t.Errorf("key = %v", m["key"])
	}
	if m["error"] != "boom" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "stream", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[stream][INF]") {
		t.Errorf("console output missing tool/level tag: %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("no-color output contains escape codes: %q", out)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	l.WithComponent("x").Error("discarded")
}

func TestInitAndGlobal(t *testing.T) {
	Init(Config{Level: "debug", Format: FormatJSON, Output: "stderr"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}

	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	_ = WithComponent("handler")
	_ = WithContext(context.Background())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{
			"key-value pairs",
			[]interface{}{"op", "save", "id", 42},
			map[string]interface{}{"op": "save", "id": 42},
		},
		{
			"odd number of args",
			[]interface{}{"op", "save", "trailing"},
			map[string]interface{}{"op": "save"},
		},
		{
			"non-string key skipped",
			[]interface{}{123, "value", "key", "val"},
			map[string]interface{}{"key": "val"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("len = %d, want %d", len(result), len(tc.expected))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	fields := ErrorFields("submit", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "submit" || fields[FieldError] != "something broke" {
		t.Errorf("unexpected error fields: %v", fields)
	}

	fields = DurationFields("stream", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}

	merged := MergeWithError(nil, fmt.Errorf("test error"))
	if merged[FieldError] != "test error" {
		t.Errorf("expected error field from nil map, got %v", merged[FieldError])
	}
}
