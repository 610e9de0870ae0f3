package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptprobe/component"
	apperrors "github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/server"
	"github.com/kbukum/promptprobe/version"
)

// Server is an OpenAI-compatible fake chat-completion provider.
type Server struct {
	cfg      Config
	srv      *server.Server
	registry *component.Registry
	log      *logger.Logger
	requests atomic.Int64
	failures atomic.Int64
	// failNext decides failure injection; replaced in tests.
	failNext func() bool
}

// New builds the fake provider and registers its routes. cfg should have had
// ApplyDefaults called. registry, when non-nil, backs the /health report.
func New(cfg Config, registry *component.Registry, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	s := &Server{
		cfg:      cfg,
		srv:      server.New(cfg.Server, log),
		registry: registry,
		log:      log.WithComponent("mockserver"),
	}
	s.failNext = func() bool {
		return s.cfg.FailureRate > 0 && rand.Float64() < s.cfg.FailureRate
	}

	r := s.srv.GinEngine()
	v1 := r.Group("/v1", s.authorize)
	v1.POST("/chat/completions", s.chatCompletions)
	v1.GET("/models", s.listModels)
	s.srv.RegisterDefaultEndpoints(s.health)
	return s
}

// Component exposes the underlying HTTP server for lifecycle management.
func (s *Server) Component() *server.ServerComponent { return server.NewComponent(s.srv) }

// Handler returns the root handler, for use with httptest.
func (s *Server) Handler() http.Handler { return s.srv.Handler() }

// URL returns the server's base URL; valid once started.
func (s *Server) URL() string { return s.srv.URL() }

// Requests returns how many completions were received.
func (s *Server) Requests() int64 { return s.requests.Load() }

// Failures returns how many completions were answered with an injected failure.
func (s *Server) Failures() int64 { return s.failures.Load() }

func (s *Server) health(ctx context.Context) *observability.ServiceHealth {
	if s.registry == nil {
		sh := observability.NewServiceHealth("mockllm", version.Short())
		sh.AddComponent(observability.Health{Name: "mockserver", Status: observability.HealthStatusUp})
		return sh
	}
	return s.registry.ServiceHealth(ctx, "mockllm", version.Short())
}

// authorize enforces the configured bearer key.
func (s *Server) authorize(c *gin.Context) {
	if s.cfg.Key == "" {
		c.Next()
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+s.cfg.Key {
		server.RespondWithError(c, apperrors.HTTPStatus(http.StatusUnauthorized, "invalid credential"))
		return
	}
	c.Next()
}

func (s *Server) listModels(c *gin.Context) {
	list := modelList{Object: "list", Data: make([]model, 0, len(s.cfg.Models))}
	for _, id := range s.cfg.Models {
		list.Data = append(list.Data, model{ID: id, Object: "model", OwnedBy: "promptprobe"})
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) chatCompletions(c *gin.Context) {
	s.requests.Add(1)
	requestID := c.GetHeader("X-Request-Id")

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.HTTPStatus(http.StatusBadRequest, err.Error()))
		return
	}
	if req.Model == "" {
		req.Model = c.GetHeader("X-Targon-Model")
	}
	if req.Model == "" {
		req.Model = s.cfg.Models[0]
	}

	if !sleep(c.Request.Context(), s.cfg.Latency) {
		return
	}

	if s.failNext() {
		s.failures.Add(1)
		s.log.Debug("Injecting failure", logger.Fields(
			logger.FieldRequestID, requestID,
			logger.FieldStatusCode, s.cfg.FailureStatus,
		))
		server.RespondWithError(c, apperrors.HTTPStatus(s.cfg.FailureStatus, "injected failure"))
		return
	}

	content, toolCalls := reply(req, s.cfg.Reply)
	id := newID("chatcmpl-", 29)
	usage := llm.Usage{PromptTokens: countWords(req.Messages), CompletionTokens: len(strings.Fields(content))}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens

	s.log.Debug("Completion", logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldModel, req.Model,
		"stream", req.Stream,
		logger.FieldChars, len(content),
	))

	if req.Stream {
		s.stream(c, id, req.Model, content)
		return
	}

	finish := "stop"
	if len(toolCalls) > 0 {
		finish = "tool_calls"
	}
	msg := chatMessage{Role: "assistant", ToolCalls: toolCalls}
	if len(toolCalls) == 0 {
		msg.Content = &content
	}
	c.JSON(http.StatusOK, chatResponse{
		ID:      id,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []chatChoice{{Index: 0, Message: msg, FinishReason: finish}},
		Usage:   usage,
	})
}

// stream writes content as server-sent events: a role frame, one frame per
// word, a finish frame, then the [DONE] sentinel.
func (s *Server) stream(c *gin.Context, id, modelName, content string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	created := time.Now().Unix()
	send := func(delta streamDelta, finish *string) bool {
		b, _ := json.Marshal(streamChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   modelName,
			Choices: []streamChoice{{Index: 0, Delta: delta, FinishReason: finish}},
		})
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", b); err != nil {
			return false
		}
		c.Writer.Flush()
		return true
	}

	if !send(streamDelta{Role: "assistant"}, nil) {
		return
	}
	for _, frag := range fragments(content) {
		if !sleep(c.Request.Context(), s.cfg.FragmentDelay) {
			return
		}
		if !send(streamDelta{Content: frag}, nil) {
			return
		}
	}
	stop := "stop"
	if !send(streamDelta{}, &stop) {
		return
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

// sleep waits d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
