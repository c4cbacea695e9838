// Package outputparsers post-processes raw model output.
package outputparsers

import "context"

// OutputParser transforms a raw generated string into a refined one.
type OutputParser interface {
	Parse(ctx context.Context, text string) (string, error)
}
