package stream

import "context"

// Consumer pulls generation requests from a broker and runs them until
// the context is canceled.
type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
