// Package sse provides a Server-Sent Events frame reader.
//
// Chat-completion providers write one JSON document per "data:" line, so the
// reader yields one Event per data line instead of buffering lines until the
// blank separator. A frame that fails to decode downstream therefore never
// swallows the frames around it.
package sse

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	initialBufferSize = 64 * 1024
	// MaxFrameSize bounds a single line. Frames carrying large tool-call
	// arguments can exceed bufio's 64KiB default. Longer lines are cut at
	// this size and the rest of the line is discarded.
	MaxFrameSize = 4 * 1024 * 1024
)

// ErrFrameTooLarge describes a data frame that was cut at MaxFrameSize.
var ErrFrameTooLarge = errors.New("sse: frame exceeds MaxFrameSize")

// DoneSentinel is the payload OpenAI-compatible providers send as the last frame.
const DoneSentinel = "[DONE]"

// Event represents a single server-sent data frame.
type Event struct {
	// Event is the SSE event type from the most recent "event:" line. Empty for data-only frames.
	Event string
	// Data is the payload of one "data:" line.
	Data string
	// ID is the event ID from the most recent "id:" line.
	ID string
	// Truncated is set when the line exceeded MaxFrameSize; Data holds only
	// its first MaxFrameSize bytes.
	Truncated bool
}

// IsDone reports whether the frame is the end-of-stream sentinel.
func (e *Event) IsDone() bool {
	return !e.Truncated && strings.TrimSpace(e.Data) == DoneSentinel
}

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next data frame. Returns io.EOF when the stream ends.
	Next() (*Event, error)
	// Close releases the underlying resources.
	Close() error
}

type reader struct {
	br    *bufio.Reader
	body  io.ReadCloser
	line  []byte
	event string
	id    string
}

// NewReader creates an SSE reader from a readable stream.
func NewReader(body io.ReadCloser) Reader {
	return &reader{
		br:   bufio.NewReaderSize(body, initialBufferSize),
		body: body,
	}
}

// Next returns the next data frame. Returns io.EOF when the stream ends.
func (r *reader) Next() (*Event, error) {
	for {
		raw, truncated, err := r.readLine()
		if err != nil {
			return nil, err
		}
		line := string(raw)

		// Blank line ends an event block; field state resets.
		if line == "" {
			r.event, r.id = "", ""
			continue
		}

		// Skip comments (keep-alives)
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := parseSSELine(line)
		switch {
		case field == "data":
			return &Event{Event: r.event, Data: value, ID: r.id, Truncated: truncated}, nil
		case truncated:
			// A cut event or id line carries no usable value.
		case field == "event":
			r.event = value
		case field == "id":
			r.id = value
		}
	}
}

// readLine returns the next line without its line ending. At most MaxFrameSize
// bytes are kept; truncated reports whether anything was dropped. A final
// line without a trailing newline is still returned.
func (r *reader) readLine() (line []byte, truncated bool, err error) {
	// Headroom for the line ending of a line that is exactly MaxFrameSize long.
	const limit = MaxFrameSize + len("\r\n")
	r.line = r.line[:0]
	for {
		chunk, readErr := r.br.ReadSlice('\n')
		if !truncated {
			if room := limit - len(r.line); len(chunk) > room {
				r.line = append(r.line, chunk[:room]...)
				truncated = true
			} else {
				r.line = append(r.line, chunk...)
			}
		}
		if readErr == bufio.ErrBufferFull {
			continue
		}
		if readErr != nil && (readErr != io.EOF || (len(r.line) == 0 && !truncated)) {
			return nil, false, readErr
		}
		break
	}

	line = bytes.TrimSuffix(bytes.TrimSuffix(r.line, []byte("\n")), []byte("\r"))
	if len(line) > MaxFrameSize {
		line, truncated = line[:MaxFrameSize], true
	}
	return line, truncated, nil
}

// Close releases the underlying stream.
func (r *reader) Close() error {
	return r.body.Close()
}

// parseSSELine parses a single SSE line into field and value.
func parseSSELine(line string) (field, value string) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return line, ""
	}
	field = line[:idx]
	value = line[idx+1:]
	// A single space after the colon is not part of the value.
	if value != "" && value[0] == ' ' {
		value = value[1:]
	}
	return field, value
}
