package chains

import (
	"time"

	"github.com/stackmeld/llmchain/llms"
)

// CallOptions enumerates the tunables that are meaningful at chain
// construction time. They are converted to model-level options and
// folded into the model client exactly once, by Build; a chain's option
// set is fixed for its lifetime.
//
// The set is closed: being a plain struct there is nothing unknown to
// reject or ignore at conversion time.
type CallOptions struct {
	MaxTokens     *int
	Temperature   *float64
	StopWords     *[]string
	TopK          *int
	TopP          *float64
	Timeout       *time.Duration
	StreamingFunc llms.StreamingFunc
}

// ToLLMOptions converts the chain options into the model client's own
// representation, losslessly.
func (o CallOptions) ToLLMOptions() llms.CallOptions {
	return llms.CallOptions{
		MaxTokens:     o.MaxTokens,
		Temperature:   o.Temperature,
		StopWords:     o.StopWords,
		TopK:          o.TopK,
		TopP:          o.TopP,
		Timeout:       o.Timeout,
		StreamingFunc: o.StreamingFunc,
	}
}
