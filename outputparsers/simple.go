package outputparsers

import "context"

// Simple is the identity parser: it returns its input unchanged and
// never fails. Chains built without an explicit parser use it so they
// behave as pure text producers.
type Simple struct{}

func NewSimple() *Simple {
	return &Simple{}
}

func (*Simple) Parse(_ context.Context, text string) (string, error) {
	return text, nil
}
