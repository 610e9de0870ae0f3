package llm

import (
	"context"
	"io"
	"time"

	apperrors "github.com/kbukum/promptprobe/errors"
	"github.com/kbukum/promptprobe/httpclient"
	"github.com/kbukum/promptprobe/httpclient/sse"
	"github.com/kbukum/promptprobe/logger"
)

// readStream decodes "data:" frames until the sentinel, the end of the body,
// or a read failure. Frames the dialect cannot decode, and frames cut at
// sse.MaxFrameSize, are logged and skipped.
func (a *Adapter) readStream(ctx context.Context, resp *httpclient.StreamResponse, ch chan<- StreamChunk) {
	defer close(ch)
	defer func() { _ = resp.Close() }()

	reader := resp.Events()
	if reader == nil {
		a.fail(ctx, ch, ErrNoStreamBody)
		return
	}

	log := a.log.WithContext(ctx)
	for {
		event, err := reader.Next()
		if err != nil {
			if err != io.EOF {
				a.fail(ctx, ch, readError(ctx, err))
			}
			return
		}

		var (
			content  string
			done     bool
			parseErr error
		)
		if event.Truncated {
			parseErr = sse.ErrFrameTooLarge
		} else {
			content, done, parseErr = a.dialect.ParseStreamChunk([]byte(event.Data))
		}
		if parseErr != nil {
			log.Debug("skipping malformed stream frame", logger.MergeWithError(
				logger.Fields(logger.FieldErrorCode, apperrors.ErrCodeMalformedFrame, logger.FieldChars, len(event.Data)),
				apperrors.MalformedFrame(event.Data, parseErr),
			))
			continue
		}
		if !done && content == "" {
			continue
		}

		select {
		case ch <- StreamChunk{Content: content, Done: done}:
		case <-ctx.Done():
			a.fail(ctx, ch, ctx.Err())
			return
		}
		if done {
			return
		}
	}
}

// abandonGrace bounds how long a canceled stream waits for its reader to take
// the final error chunk.
const abandonGrace = time.Second

// fail delivers a terminal error chunk. Once ctx is done the reader may have
// gone away, so the send gives up after abandonGrace.
func (a *Adapter) fail(ctx context.Context, ch chan<- StreamChunk, err error) {
	select {
	case ch <- StreamChunk{Err: err}:
	case <-ctx.Done():
		timer := time.NewTimer(abandonGrace)
		defer timer.Stop()
		select {
		case ch <- StreamChunk{Err: err}:
		case <-timer.C:
		}
	}
}

func readError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return httpclient.NewConnectionError(err)
}
