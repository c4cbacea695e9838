package chains

import (
	"errors"
	"fmt"

	"github.com/stackmeld/llmchain/prompt"
)

// ErrorKind classifies a chain failure.
type ErrorKind string

const (
	// ErrKindMissingObject reports required wiring absent at build time.
	ErrKindMissingObject ErrorKind = "missing_object"
	// ErrKindMissingInput reports a call missing a declared input variable.
	ErrKindMissingInput ErrorKind = "missing_input"
	// ErrKindFormat reports a prompt formatting failure.
	ErrKindFormat ErrorKind = "format"
	// ErrKindLLM reports a failure propagated from the model client.
	ErrKindLLM ErrorKind = "llm"
	// ErrKindParse reports an output parser failure.
	ErrKindParse ErrorKind = "parse"
)

// ErrBuilderConsumed is returned when Build is called on a builder that
// already produced a chain.
var ErrBuilderConsumed = errors.New("chains: builder already consumed")

// Error is the chain-level failure. Nothing is recovered inside the
// core; every failure reaches the caller carrying its kind and cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chain %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("chain %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError unwraps err into an *Error if one is anywhere in its chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func missingObjectError(which string) *Error {
	return &Error{Kind: ErrKindMissingObject, Message: which}
}

// formatError lifts a formatter failure. A missing declared variable is
// surfaced as MissingInput naming it; everything else is Format.
func formatError(err error) *Error {
	if mv, ok := prompt.AsMissingVariable(err); ok {
		return &Error{Kind: ErrKindMissingInput, Message: mv.Variable, Cause: err}
	}
	return &Error{Kind: ErrKindFormat, Message: "failed to format prompt", Cause: err}
}

func llmError(err error) *Error {
	return &Error{Kind: ErrKindLLM, Message: "model call failed", Cause: err}
}

func parseError(err error) *Error {
	return &Error{Kind: ErrKindParse, Message: "failed to parse output", Cause: err}
}
