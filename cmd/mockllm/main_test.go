package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestLoad_Flags(t *testing.T) {
	cfg, showVersion, err := load([]string{
		"--port", "30111", "--latency", "250ms", "--failure-rate", "0.25", "--reply", "lorem", "--key", "secret",
	})
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if showVersion {
		t.Fatal("showVersion should be false")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	if cfg.Name != toolName {
		t.Errorf("Name = %q", cfg.Name)
	}
	m := cfg.Mock
	if m.Server.Port != 30111 || m.Latency != 250*time.Millisecond || m.FailureRate != 0.25 {
		t.Errorf("mock config = %+v", m)
	}
	if m.Reply != "lorem" || m.Key != "secret" || m.FailureStatus != http.StatusInternalServerError {
		t.Errorf("mock config = %+v", m)
	}
}

func TestLoad_InvalidReply(t *testing.T) {
	cfg, _, err := load([]string{"--reply", "shout"})
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for reply mode")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRun_ServesUntilCanceled(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var summary bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"--port", fmt.Sprint(port), "--log-level", "error"}, &bytes.Buffer{}, &summary)
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("mock never became healthy: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
	if !strings.Contains(summary.String(), "mockllm") {
		t.Errorf("summary = %q", summary.String())
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"--version"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "mockllm ") {
		t.Errorf("output = %q", out.String())
	}
}
