// Package probe runs a fixed suite of checks against a chat-completion
// provider: plain streaming, function calling with a tool round trip,
// streaming with sampling parameters, and JSON structured output.
//
// Each probe writes a "=== Test N: ... ===" header and its output to the
// suite's writer. A failing probe prints "Error: <msg>" and the suite moves
// on to the next one.
package probe
