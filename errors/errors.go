package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation could be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status associated with this error, if any.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors ---

// TransportFailed creates an AppError for a request that never got a response.
func TransportFailed(endpoint string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransportFailed, Message: fmt.Sprintf("request to %s failed", endpoint),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"endpoint": endpoint}, Cause: cause,
	}
}

// HTTPStatus creates an AppError for a non-2xx provider response.
// The response body, if any, is kept in the details for display.
func HTTPStatus(status int, body string) *AppError {
	e := &AppError{
		Code: ErrCodeHTTPStatus, Message: fmt.Sprintf("provider returned HTTP %d", status),
		HTTPStatus: status, Retryable: status == http.StatusTooManyRequests || status >= 500,
		Details: map[string]any{"status": status},
	}
	if body != "" {
		e.Details["body"] = body
	}
	return e
}

// Timeout creates an AppError for an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s timed out", operation),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// Canceled creates an AppError for an operation the caller canceled.
func Canceled(operation string) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: fmt.Sprintf("%s canceled", operation),
		Details: map[string]any{"operation": operation},
	}
}

// MalformedFrame creates an AppError for a stream frame that is not valid JSON.
func MalformedFrame(frame string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeMalformedFrame, Message: "malformed stream frame",
		Details: map[string]any{"frame": frame}, Cause: cause,
	}
}

// ConfigInvalid creates an AppError for a configuration that failed validation.
func ConfigInvalid(message string) *AppError {
	return &AppError{
		Code: ErrCodeConfigInvalid, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// PromptInvalid creates an AppError for an unreadable or malformed prompt file.
func PromptInvalid(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodePromptInvalid, Message: fmt.Sprintf("invalid prompt file %s", path),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
