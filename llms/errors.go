package llms

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a backend failure.
type ErrorKind string

const (
	ErrKindRequest  ErrorKind = "request"
	ErrKindDecode   ErrorKind = "decode"
	ErrKindProvider ErrorKind = "provider"
	ErrKindStream   ErrorKind = "stream"
	ErrKindCanceled ErrorKind = "canceled"
)

// Error is the provider-agnostic failure every Model implementation
// returns.
type Error struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Provider != "" {
		return fmt.Sprintf("llm %s: %s", e.Provider, msg)
	}
	return fmt.Sprintf("llm: %s", msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a backend error with a formatted message.
func NewError(provider string, kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{
		Provider: provider,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
	}
}

// AsError unwraps err into an *Error if one is anywhere in its chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
