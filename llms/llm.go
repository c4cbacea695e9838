// Package llms defines the provider-agnostic contract for chat-based
// text generation models. Concrete backends live in subpackages.
package llms

import (
	"context"

	"github.com/stackmeld/llmchain/schema"
)

// Model is the interface a model backend must implement.
//
// Implementations are expected to honor ctx cancellation, to return a
// *Error (or wrap one) for backend failures, and to apply CallOptions
// folded in via AddOptions to every subsequent request.
type Model interface {
	// Generate runs a one-shot completion over the messages.
	Generate(ctx context.Context, messages []schema.Message) (*GenerateResult, error)

	// Stream establishes a streaming completion. The returned Stream
	// yields chunks until io.EOF.
	Stream(ctx context.Context, messages []schema.Message) (Stream, error)

	// AddOptions merges opts into the model's configuration. Fields
	// that are unset in opts leave the existing configuration alone.
	AddOptions(opts CallOptions)
}

// Stream is a lazy, finite, non-restartable sequence of generation
// chunks.
//
// Recv returns (chunk, nil) for each item and io.EOF when the stream
// ends normally. Close releases the underlying transport; it is safe
// to call more than once.
type Stream interface {
	Recv() (schema.StreamChunk, error)
	Close() error
}
