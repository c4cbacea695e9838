package schema

import "encoding/json"

// StreamChunk is one incremental unit of a streamed generation.
//
// Content carries the text delta. StopReason is only set on the final
// chunk of providers that report one. Raw optionally holds the
// provider's original event payload.
type StreamChunk struct {
	Content    string          `json:"content"`
	StopReason string          `json:"stop_reason,omitempty"`
	Raw        json.RawMessage `json:"-"`
}
