package bedrock

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/schema"
)

const anthropicVersion = "bedrock-2023-05-31"

// Anthropic requires max_tokens; used when no option was folded in.
const defaultMaxTokens = 256

type claudeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      *float64        `json:"temperature,omitempty"`
	TopK             *int            `json:"top_k,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	StopSequences    []string        `json:"stop_sequences,omitempty"`
	System           string          `json:"system,omitempty"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *Client) Generate(ctx context.Context, messages []schema.Message) (*llms.GenerateResult, error) {
	if c.opts.StreamingFunc != nil {
		return c.generateStreaming(ctx, messages)
	}

	ctx, cancel := c.opts.WithRequestTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(c.buildRequest(messages))
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindRequest, err, "unable to serialize claude request")
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.resolveModelID()),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindProvider, err, "unable to invoke claude model")
	}

	var response claudeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindDecode, err, "failed to unmarshal bedrock response")
	}

	var generation string
	for _, block := range response.Content {
		if block.Type == "text" {
			generation += block.Text
		}
	}

	return &llms.GenerateResult{
		Generation: generation,
		StopReason: response.StopReason,
		Usage: &llms.Usage{
			InputTokens:  response.Usage.InputTokens,
			OutputTokens: response.Usage.OutputTokens,
			TotalTokens:  response.Usage.InputTokens + response.Usage.OutputTokens,
		},
	}, nil
}

// generateStreaming drives the streaming API and reports each chunk to
// the configured callback while accumulating the final result.
func (c *Client) generateStreaming(ctx context.Context, messages []schema.Message) (*llms.GenerateResult, error) {
	stream, err := c.Stream(ctx, messages)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return llms.DrainStream(ctx, stream, c.opts.StreamingFunc)
}

func (c *Client) buildRequest(messages []schema.Message) claudeRequest {
	req := claudeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        defaultMaxTokens,
	}

	if c.opts.MaxTokens != nil {
		req.MaxTokens = *c.opts.MaxTokens
	}
	req.Temperature = c.opts.Temperature
	req.TopK = c.opts.TopK
	req.TopP = c.opts.TopP
	if c.opts.StopWords != nil {
		req.StopSequences = *c.opts.StopWords
	}

	for _, msg := range messages {
		// Anthropic carries the system prompt out of band.
		if msg.Role == schema.RoleSystem {
			if req.System != "" {
				req.System += "\n"
			}
			req.System += msg.Content
			continue
		}
		req.Messages = append(req.Messages, claudeMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	return req
}
