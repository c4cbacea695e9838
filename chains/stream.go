package chains

import (
	"errors"
	"io"

	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/schema"
)

// liftedStream adapts a model stream into a chain stream. It is a pure
// per-item error translation: chunks pass through untouched, in order,
// with the producer's pacing; nothing is buffered or dropped. io.EOF
// stays io.EOF so consumers keep the usual termination check.
type liftedStream struct {
	inner llms.Stream
}

func liftStream(inner llms.Stream) Stream {
	return &liftedStream{inner: inner}
}

func (s *liftedStream) Recv() (schema.StreamChunk, error) {
	chunk, err := s.inner.Recv()
	if err != nil && !errors.Is(err, io.EOF) {
		return chunk, llmError(err)
	}
	return chunk, err
}

func (s *liftedStream) Close() error {
	return s.inner.Close()
}
