package llms

import (
	"context"
	"errors"
	"io"
	"strings"
)

// DrainStream consumes a stream to completion and assembles the final
// GenerateResult. When fn is non-nil it is invoked for every chunk; an
// error from fn stops consumption and is returned.
//
// The caller keeps ownership of the stream and is responsible for
// closing it.
func DrainStream(ctx context.Context, stream Stream, fn StreamingFunc) (*GenerateResult, error) {
	var (
		sb         strings.Builder
		stopReason string
	)

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		sb.WriteString(chunk.Content)
		if chunk.StopReason != "" {
			stopReason = chunk.StopReason
		}

		if fn != nil {
			if err := fn(ctx, chunk); err != nil {
				return nil, err
			}
		}
	}

	return &GenerateResult{Generation: sb.String(), StopReason: stopReason}, nil
}
