// Package runner holds the named chains built from configuration and
// executes them on request.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/chains"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/prompt"
)

// ErrUnknownChain is wrapped into every lookup failure.
var ErrUnknownChain = errors.New("unknown chain")

type Runner struct {
	chains map[string]chains.Chain
	names  []string
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Runner {
	return &Runner{
		chains: make(map[string]chains.Chain),
		logger: logger,
	}
}

// Register adds a chain under name, keeping registration order for
// Names. Registering a duplicate name replaces the chain.
func (r *Runner) Register(name string, chain chains.Chain) {
	if _, ok := r.chains[name]; !ok {
		r.names = append(r.names, name)
	}
	r.chains[name] = chain
}

// Names lists the registered chains in registration order.
func (r *Runner) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Chain returns the chain registered under name.
func (r *Runner) Chain(name string) (chains.Chain, error) {
	chain, ok := r.chains[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChain, name)
	}
	return chain, nil
}

func (r *Runner) Call(ctx context.Context, name string, args prompt.Args) (*llms.GenerateResult, error) {
	chain, err := r.Chain(name)
	if err != nil {
		return nil, err
	}

	result, err := chain.Call(ctx, args)
	if err != nil {
		r.logger.Error().Err(err).Str("chain", name).Msg("chain call failed")
		return nil, err
	}

	r.logger.Info().
		Str("chain", name).
		Str("stop_reason", result.StopReason).
		Msg("chain call complete")

	return result, nil
}

func (r *Runner) Invoke(ctx context.Context, name string, args prompt.Args) (string, error) {
	chain, err := r.Chain(name)
	if err != nil {
		return "", err
	}

	output, err := chain.Invoke(ctx, args)
	if err != nil {
		r.logger.Error().Err(err).Str("chain", name).Msg("chain invoke failed")
		return "", err
	}

	r.logger.Info().Str("chain", name).Msg("chain invoke complete")
	return output, nil
}

func (r *Runner) Stream(ctx context.Context, name string, args prompt.Args) (chains.Stream, error) {
	chain, err := r.Chain(name)
	if err != nil {
		return nil, err
	}

	stream, err := chain.Stream(ctx, args)
	if err != nil {
		r.logger.Error().Err(err).Str("chain", name).Msg("chain stream setup failed")
		return nil, err
	}

	r.logger.Info().Str("chain", name).Msg("chain stream established")
	return stream, nil
}
