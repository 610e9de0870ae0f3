package httpclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/kbukum/promptprobe/errors"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeCanceled, "canceled"},
		{ErrCodeValidation, "validation"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeRejected, "rejected"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
		{ErrorCode(-1), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ClassifyStatusCode(404, nil), "httpclient: not_found (HTTP 404): HTTP 404"},
		{NewConnectionError(errors.New("connection refused")), "httpclient: connection: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	if !errors.Is(NewConnectionError(inner), inner) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want ErrorCode
	}{
		{400, ErrCodeRejected},
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{422, ErrCodeRejected},
		{429, ErrCodeRateLimit},
		{500, ErrCodeServer},
		{503, ErrCodeServer},
		{302, ErrCodeServer},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			e := ClassifyStatusCode(tt.code, []byte("body"))
			if e == nil {
				t.Fatal("expected error, got nil")
			}
			if e.Code != tt.want || e.StatusCode != tt.code || string(e.Body) != "body" {
				t.Errorf("got %+v, want code %s", e, tt.want)
			}
		})
	}

	for _, ok := range []int{200, 201, 204} {
		if e := ClassifyStatusCode(ok, nil); e != nil {
			t.Errorf("ClassifyStatusCode(%d) = %v, want nil", ok, e)
		}
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"timeout", NewTimeoutError(errors.New("timed out")), IsTimeout},
		{"connection", NewConnectionError(errors.New("refused")), IsConnection},
		{"auth", ClassifyStatusCode(401, nil), IsAuth},
		{"not found", ClassifyStatusCode(404, nil), IsNotFound},
		{"rate limit", ClassifyStatusCode(429, nil), IsRateLimit},
		{"server", ClassifyStatusCode(500, nil), IsServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(fmt.Errorf("llm: %w", tt.err)) {
				t.Errorf("helper did not match wrapped %v", tt.err)
			}
			if tt.is(NewValidationError("bad")) {
				t.Error("helper matched an unrelated error")
			}
		})
	}
}

func TestError_AppError(t *testing.T) {
	conn := NewConnectionError(errors.New("connection refused"))
	conn.URL = "http://127.0.0.1:1/chat/completions"

	tests := []struct {
		name string
		err  *Error
		want apperrors.ErrorCode
	}{
		{"status", ClassifyStatusCode(502, []byte("bad gateway")), apperrors.ErrCodeHTTPStatus},
		{"auth", ClassifyStatusCode(401, nil), apperrors.ErrCodeHTTPStatus},
		{"timeout", NewTimeoutError(errors.New("deadline")), apperrors.ErrCodeTimeout},
		{"canceled", NewCanceledError(errors.New("canceled")), apperrors.ErrCodeCanceled},
		{"connection", conn, apperrors.ErrCodeTransportFailed},
		{"validation", NewValidationError("encode body"), apperrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("llm: %w", tt.err)
			if got := apperrors.CodeOf(wrapped); got != tt.want {
				t.Errorf("CodeOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestError_AppError_TruncatesBody(t *testing.T) {
	body := []byte(strings.Repeat("x", maxBodyDetail*2))
	appErr := ClassifyStatusCode(500, body).AppError()
	if got := len(appErr.Details["body"].(string)); got != maxBodyDetail {
		t.Errorf("body detail length = %d, want %d", got, maxBodyDetail)
	}
}
