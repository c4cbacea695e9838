package bedrock

import (
	"context"
	"encoding/json"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/schema"
)

func (c *Client) Stream(ctx context.Context, messages []schema.Message) (llms.Stream, error) {
	body, err := json.Marshal(c.buildRequest(messages))
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindRequest, err, "unable to serialize claude request")
	}

	output, err := c.client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(c.resolveModelID()),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindProvider, err, "unable to open claude stream")
	}

	return &claudeStream{events: output.GetStream()}, nil
}

// claudeEvent covers the Anthropic stream event shapes we care about:
// content_block_delta carries text, message_delta carries the stop
// reason. Everything else (message_start, pings, block boundaries) is
// skipped.
type claudeEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type       string `json:"type"`
		Text       string `json:"text"`
		StopReason string `json:"stop_reason"`
	} `json:"delta"`
}

type claudeStream struct {
	events *bedrockruntime.InvokeModelWithResponseStreamEventStream
}

var _ llms.Stream = (*claudeStream)(nil)

func (s *claudeStream) Recv() (schema.StreamChunk, error) {
	for {
		event, ok := <-s.events.Events()
		if !ok {
			if err := s.events.Err(); err != nil {
				return schema.StreamChunk{}, llms.NewError(providerName, llms.ErrKindStream, err, "claude stream failed")
			}
			return schema.StreamChunk{}, io.EOF
		}

		chunk, ok, err := decodeEvent(event)
		if err != nil {
			return schema.StreamChunk{}, err
		}
		if ok {
			return chunk, nil
		}
	}
}

func (s *claudeStream) Close() error {
	return s.events.Close()
}

func decodeEvent(event types.ResponseStream) (schema.StreamChunk, bool, error) {
	part, ok := event.(*types.ResponseStreamMemberChunk)
	if !ok {
		return schema.StreamChunk{}, false, nil
	}

	var ev claudeEvent
	if err := json.Unmarshal(part.Value.Bytes, &ev); err != nil {
		return schema.StreamChunk{}, false, llms.NewError(providerName, llms.ErrKindDecode, err, "failed to unmarshal stream event")
	}

	switch ev.Type {
	case "content_block_delta":
		return schema.StreamChunk{Content: ev.Delta.Text, Raw: part.Value.Bytes}, true, nil
	case "message_delta":
		if ev.Delta.StopReason == "" {
			return schema.StreamChunk{}, false, nil
		}
		return schema.StreamChunk{StopReason: ev.Delta.StopReason, Raw: part.Value.Bytes}, true, nil
	default:
		return schema.StreamChunk{}, false, nil
	}
}
