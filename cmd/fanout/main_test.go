package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/promptprobe/fanout"
	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/mockserver"
	"github.com/kbukum/promptprobe/prompt"
)

func startMock(t *testing.T, mutate func(*mockserver.Config)) string {
	t.Helper()
	cfg := mockserver.Config{}
	if mutate != nil {
		mutate(&cfg)
	}
	cfg.ApplyDefaults()
	ts := httptest.NewServer(mockserver.New(cfg, nil, logger.NewNop()).Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/v1"
}

func writePrompt(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "prompt.json")
	if err := prompt.Save(path, llm.Message{Role: llm.RoleUser, Content: content}); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPrintResults(t *testing.T) {
	results := []fanout.Result[string]{
		{Index: 0, Value: "first"},
		{Index: 1, Err: errors.New("status 502")},
		{Index: 2, Value: ""},
	}
	var out bytes.Buffer

	failed := printResults(&out, results)
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	want := "Response 1: first\nResponse 2: error: status 502\nResponse 3: \n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		flags  []string
		mutate func(*mockserver.Config)
		want   []string
	}{
		{
			name:  "streaming",
			flags: []string{"--count", "3"},
			want:  []string{"Response 1: You said: ping\n", "Response 2: You said: ping\n", "Response 3: You said: ping\n"},
		},
		{
			name:  "non-streaming bounded",
			flags: []string{"-n", "4", "--stream=false", "--concurrency", "2"},
			want:  []string{"Response 1: You said: ping\n", "Response 4: You said: ping\n"},
		},
		{
			name:   "every request fails",
			flags:  []string{"--count", "2"},
			mutate: func(c *mockserver.Config) { c.FailureRate = 1 },
			want:   []string{"Response 1: error: ", "Response 2: error: "},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			baseURL := startMock(t, tc.mutate)
			path := writePrompt(t, dir, "ping")
			var out bytes.Buffer

			args := append([]string{"--base-url", baseURL, "--prompt", path, "--log-level", "error"}, tc.flags...)
			if err := run(context.Background(), args, &out); err != nil {
				t.Fatalf("run() error: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestRun_LiveAndTextfile(t *testing.T) {
	dir := t.TempDir()
	baseURL := startMock(t, nil)
	path := writePrompt(t, dir, "ping")
	textfile := filepath.Join(dir, "fanout.prom")
	var out bytes.Buffer

	args := []string{
		"--base-url", baseURL, "--prompt", path, "--log-level", "error",
		"--count", "2", "--live", "--metrics-textfile", textfile,
	}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "[1] ping") || !strings.Contains(got, "[2] ping") {
		t.Errorf("live fragments missing:\n%s", got)
	}
	if strings.Index(got, "Response 1:") < strings.LastIndex(got, "] ") {
		t.Errorf("responses should follow the live fragments:\n%s", got)
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `promptprobe_requests_total{`) {
		t.Errorf("textfile = %s", data)
	}
}
