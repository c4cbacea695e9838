// Package batch runs generation requests from a JSONL file through the
// chain runner with a bounded worker pool.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/internal/models"
)

// Record is one parsed input line. Error is set when the line did not
// decode; the request is then zero.
type Record struct {
	Line    int
	Request models.GenerationRequest
	Error   error
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll emits one Record per non-empty input line until the source is
// drained or the context is canceled.
func (r *Reader) ReadAll(ctx context.Context) <-chan Record {
	out := make(chan Record)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			record := Record{Line: line}
			if err := json.Unmarshal([]byte(text), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", line, err)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", line).Msg("reader stopped: context canceled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read input")
		}
	}()

	return out
}
