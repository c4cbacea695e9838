package llms

import (
	"context"
	"slices"
	"time"

	"github.com/stackmeld/llmchain/schema"
)

// StreamingFunc receives each chunk of a streamed generation. Returning
// an error stops the stream.
type StreamingFunc func(ctx context.Context, chunk schema.StreamChunk) error

// CallOptions are the tunables a backend recognizes for a request.
//
// Fields are pointers so that merging two option sets can tell "unset"
// from "set to the zero value": Merge only overrides fields the
// incoming set carries.
type CallOptions struct {
	// Model overrides the backend's configured model identifier.
	Model *string

	// MaxTokens caps the number of generated tokens.
	MaxTokens *int

	// Temperature sets the sampling temperature.
	Temperature *float64

	// StopWords lists sequences that terminate generation.
	StopWords *[]string

	// TopK limits sampling to the k most likely tokens.
	TopK *int

	// TopP sets the nucleus sampling threshold.
	TopP *float64

	// Timeout bounds a single request. Enforced by the backend, not by
	// the chain core.
	Timeout *time.Duration

	// StreamingFunc, when set, makes one-shot Generate drive the
	// streaming API and report each chunk. Client-side only, never
	// sent to the provider.
	StreamingFunc StreamingFunc
}

// Merge folds other into o, overriding only the fields other carries.
func (o *CallOptions) Merge(other CallOptions) {
	if other.Model != nil {
		o.Model = other.Model
	}
	if other.MaxTokens != nil {
		o.MaxTokens = other.MaxTokens
	}
	if other.Temperature != nil {
		o.Temperature = other.Temperature
	}
	if other.StopWords != nil {
		words := slices.Clone(*other.StopWords)
		o.StopWords = &words
	}
	if other.TopK != nil {
		o.TopK = other.TopK
	}
	if other.TopP != nil {
		o.TopP = other.TopP
	}
	if other.Timeout != nil {
		o.Timeout = other.Timeout
	}
	if other.StreamingFunc != nil {
		o.StreamingFunc = other.StreamingFunc
	}
}

// WithRequestTimeout derives a context honoring o.Timeout if set.
func (o *CallOptions) WithRequestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.Timeout == nil {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, *o.Timeout)
}
