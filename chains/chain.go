// Package chains composes a prompt formatter, a model client and an
// output parser behind one uniform execution surface.
package chains

import (
	"context"

	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/prompt"
	"github.com/stackmeld/llmchain/schema"
)

// Chain is a composable execution unit over a bag of named inputs.
//
// Call returns the full generate result with the output parser applied
// to its Generation. Invoke is the plain-text convenience: it returns
// the raw generation and deliberately skips the parser. Stream yields
// raw incremental output; the parser is never applied to chunks.
type Chain interface {
	// InputKeys lists the variable names the chain expects, in the
	// formatter's declared order.
	InputKeys() []string

	// OutputKeys returns a single-element list holding the output key.
	OutputKeys() []string

	Call(ctx context.Context, args prompt.Args) (*llms.GenerateResult, error)
	Invoke(ctx context.Context, args prompt.Args) (string, error)
	Stream(ctx context.Context, args prompt.Args) (Stream, error)
}

// Stream is a lazy, finite sequence of generation chunks whose errors
// belong to the chain's taxonomy. Recv returns io.EOF on normal end.
type Stream interface {
	Recv() (schema.StreamChunk, error)
	Close() error
}
