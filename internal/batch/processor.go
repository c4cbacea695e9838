package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/internal/models"
	"github.com/stackmeld/llmchain/internal/runner"
)

type Processor struct {
	runner  *runner.Runner
	workers int
	logger  *zerolog.Logger
}

func NewProcessor(run *runner.Runner, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		runner:  run,
		workers: workers,
		logger:  logger,
	}
}

// Process fans the records out over the worker pool and returns the
// result channel. Result order follows completion, not input order.
func (p *Processor) Process(ctx context.Context, records <-chan Record) <-chan models.GenerationResult {
	out := make(chan models.GenerationResult)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range records {
				result := p.run(ctx, record)
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) run(ctx context.Context, record Record) models.GenerationResult {
	result := models.GenerationResult{
		RequestID: record.Request.RequestID,
		Chain:     record.Request.Chain,
	}

	if record.Error != nil {
		result.Error = record.Error.Error()
		return result
	}

	genResult, err := p.runner.Call(ctx, record.Request.Chain, record.Request.Inputs)
	if err != nil {
		p.logger.Error().Err(err).Int("line", record.Line).Str("chain", record.Request.Chain).Msg("generation failed")
		result.Error = err.Error()
		return result
	}

	result.Output = genResult.Generation
	result.StopReason = genResult.StopReason
	return result
}
