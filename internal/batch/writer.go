package batch

import (
	"encoding/json"
	"io"

	"github.com/stackmeld/llmchain/internal/models"
)

// Writer emits results as JSONL.
type Writer struct {
	enc *json.Encoder
}

func NewWriter(sink io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(sink)}
}

func (w *Writer) Write(result models.GenerationResult) error {
	return w.enc.Encode(result)
}
