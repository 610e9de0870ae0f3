package errors

import (
	"context"
	stderrors "errors"
)

// ErrorResponse is the JSON error envelope. Its shape matches the error object
// OpenAI-compatible providers return, so the mock server can reuse it.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type,omitempty"`
	Retryable bool                   `json:"retryable"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Type:      "promptprobe_error",
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Classifier is implemented by errors from lower layers (such as the HTTP
// client) that know how to describe themselves in this taxonomy.
type Classifier interface {
	error
	AppError() *AppError
}

// Classify reduces any error to an AppError. It returns nil for a nil error.
// AppErrors found in the chain are returned as is, classifiers are asked to
// describe themselves, context errors map to TIMEOUT or CANCELED, and
// anything else is INTERNAL_ERROR.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	var c Classifier
	if stderrors.As(err, &c) {
		return c.AppError()
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return Timeout("request").WithCause(err)
	case stderrors.Is(err, context.Canceled):
		return Canceled("request").WithCause(err)
	}
	return Internal(err)
}

// CodeOf returns the taxonomy code of err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if appErr := Classify(err); appErr != nil {
		return appErr.Code
	}
	return ""
}
