package models

import "time"

// GenerationRequest is the message a producer publishes to ask a worker
// to run a chain.
type GenerationRequest struct {
	RequestID string         `json:"request_id"`
	Chain     string         `json:"chain"`
	Inputs    map[string]any `json:"inputs"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}

// GenerationResult is the reply a worker publishes once the chain ran.
// Error is set instead of Output when the run failed.
type GenerationResult struct {
	RequestID  string `json:"request_id"`
	Chain      string `json:"chain"`
	Output     string `json:"output,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
	Error      string `json:"error,omitempty"`
}
