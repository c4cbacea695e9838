package llms

// Usage reports token accounting as returned by the backend.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// GenerateResult is the outcome of a one-shot generation.
//
// Generation carries the model's text. The remaining fields are
// metadata that travel with it unchanged; anything that rewrites
// Generation (an output parser, for instance) must leave them intact.
type GenerateResult struct {
	Generation string `json:"generation"`
	StopReason string `json:"stop_reason,omitempty"`
	Usage      *Usage `json:"usage,omitempty"`
}
