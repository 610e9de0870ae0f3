// Package errors provides the error taxonomy shared by the promptprobe tools.
//
// Codes fall into two groups. Per-request codes (TRANSPORT_FAILED, HTTP_STATUS,
// TIMEOUT, CANCELED, MALFORMED_FRAME) describe the outcome of one submission
// and are reported on that submission only. Startup codes (CONFIG_INVALID,
// PROMPT_INVALID) abort the tool before any request is sent.
//
//	if appErr := errors.Classify(err); appErr != nil {
//	    fmt.Printf("error: %s\n", appErr.Message)
//	}
package errors
