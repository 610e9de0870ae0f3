package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Per-request errors. These stay attached to the submission they belong to.
const (
	// ErrCodeTransportFailed indicates the request never produced an HTTP response
	// (connection refused, DNS failure, reset mid-body).
	ErrCodeTransportFailed ErrorCode = "TRANSPORT_FAILED"
	// ErrCodeHTTPStatus indicates the provider answered with a non-2xx status.
	ErrCodeHTTPStatus ErrorCode = "HTTP_STATUS"
	// ErrCodeTimeout indicates the request exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCanceled indicates the caller canceled the request.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeMalformedFrame indicates a stream frame could not be decoded.
	ErrCodeMalformedFrame ErrorCode = "MALFORMED_FRAME"
)

// Startup errors. These are fatal for the tool that hits them.
const (
	// ErrCodeConfigInvalid indicates the loaded configuration failed validation.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ErrCodePromptInvalid indicates the prompt file is missing or malformed.
	ErrCodePromptInvalid ErrorCode = "PROMPT_INVALID"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure, such as a recovered panic.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Retryable is informational only: nothing in this module retries.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransportFailed: true,
	ErrCodeTimeout:         true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
