package openai

import (
	"context"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/schema"
)

func (c *Client) Stream(ctx context.Context, messages []schema.Message) (llms.Stream, error) {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.buildParams(messages))
	if err := stream.Err(); err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindProvider, err, "unable to open stream")
	}
	return &chatStream{sse: stream}, nil
}

type chatStream struct {
	sse *ssestream.Stream[openai.ChatCompletionChunk]
}

var _ llms.Stream = (*chatStream)(nil)

func (s *chatStream) Recv() (schema.StreamChunk, error) {
	for s.sse.Next() {
		event := s.sse.Current()
		if len(event.Choices) == 0 {
			continue
		}

		choice := event.Choices[0]
		if choice.Delta.Content == "" && choice.FinishReason == "" {
			continue
		}

		return schema.StreamChunk{
			Content:    choice.Delta.Content,
			StopReason: choice.FinishReason,
		}, nil
	}

	if err := s.sse.Err(); err != nil {
		return schema.StreamChunk{}, llms.NewError(providerName, llms.ErrKindStream, err, "stream failed")
	}
	return schema.StreamChunk{}, io.EOF
}

func (s *chatStream) Close() error {
	return s.sse.Close()
}
