package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/promptprobe/errors"
)

// ErrorCode classifies a failed exchange with an endpoint.
type ErrorCode int

const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	ErrCodeCanceled
	// ErrCodeValidation covers request bodies that could not be built.
	ErrCodeValidation
	ErrCodeAuth
	ErrCodeNotFound
	ErrCodeRateLimit
	// ErrCodeRejected is any other 4xx.
	ErrCodeRejected
	ErrCodeServer
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeCanceled:   "canceled",
	ErrCodeValidation: "validation",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeRejected:   "rejected",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

// Error is returned by Client for every failed request. Status-bearing errors
// keep the response body so callers can show what the endpoint said.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Body       []byte
	URL        string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func wrapError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// NewTimeoutError wraps a deadline that expired before a response arrived.
func NewTimeoutError(err error) *Error { return wrapError(ErrCodeTimeout, err) }

// NewCanceledError wraps a caller-side cancellation.
func NewCanceledError(err error) *Error { return wrapError(ErrCodeCanceled, err) }

// NewConnectionError wraps a dial, DNS, or mid-body read failure.
func NewConnectionError(err error) *Error { return wrapError(ErrCodeConnection, err) }

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode returns nil for 2xx and a typed *Error otherwise.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	code := ErrCodeServer
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		code = ErrCodeRateLimit
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeRejected
	}
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsTimeout(err error) bool     { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool  { return hasCode(err, ErrCodeConnection) }
func IsAuth(err error) bool        { return hasCode(err, ErrCodeAuth) }
func IsNotFound(err error) bool    { return hasCode(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool   { return hasCode(err, ErrCodeRateLimit) }
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// maxBodyDetail bounds how much of an error body is copied into AppError details.
const maxBodyDetail = 2048

// AppError maps the error onto the shared taxonomy: anything with a status
// becomes HTTP_STATUS, connection-level failures TRANSPORT_FAILED.
func (e *Error) AppError() *apperrors.AppError {
	switch {
	case e.StatusCode > 0:
		body := string(e.Body)
		if len(body) > maxBodyDetail {
			body = body[:maxBodyDetail]
		}
		return apperrors.HTTPStatus(e.StatusCode, body).WithCause(e)
	case e.Code == ErrCodeTimeout:
		return apperrors.Timeout("http request").WithCause(e)
	case e.Code == ErrCodeCanceled:
		return apperrors.Canceled("http request").WithCause(e)
	case e.Code == ErrCodeConnection:
		return apperrors.TransportFailed(e.URL, e)
	default:
		return apperrors.Internal(e)
	}
}
