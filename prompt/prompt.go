// Package prompt renders named input values into chat-style prompts.
package prompt

import "github.com/stackmeld/llmchain/schema"

// Args maps template variable names to their values for one call.
type Args map[string]any

// Value is a rendered prompt. Its only required capability is
// conversion to an ordered list of chat messages.
type Value interface {
	String() string
	Messages() []schema.Message
}

// FormatPrompter declares which variables it consumes and renders them
// into a prompt Value.
type FormatPrompter interface {
	InputVariables() []string
	FormatPrompt(args Args) (Value, error)
}
