// Package openai implements the llms.Model contract on the official
// OpenAI chat completions API.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/schema"
)

const providerName = "openai"

// Client invokes an OpenAI chat model. Fold options in with AddOptions
// before serving traffic; the client does not guard the option set
// against concurrent mutation.
type Client struct {
	client  openai.Client
	modelID string
	opts    llms.CallOptions
}

var _ llms.Model = (*Client)(nil)

func NewClient(apiKey string, modelID string, reqOpts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, llms.NewError(providerName, llms.ErrKindRequest, nil, "OpenAI API key is required")
	}
	if modelID == "" {
		return nil, llms.NewError(providerName, llms.ErrKindRequest, nil, "OpenAI model ID is required")
	}

	reqOpts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, reqOpts...)

	return &Client{
		client:  openai.NewClient(reqOpts...),
		modelID: modelID,
	}, nil
}

func (c *Client) AddOptions(opts llms.CallOptions) {
	c.opts.Merge(opts)
}

func (c *Client) Generate(ctx context.Context, messages []schema.Message) (*llms.GenerateResult, error) {
	if c.opts.StreamingFunc != nil {
		stream, err := c.Stream(ctx, messages)
		if err != nil {
			return nil, err
		}
		defer stream.Close()
		return llms.DrainStream(ctx, stream, c.opts.StreamingFunc)
	}

	ctx, cancel := c.opts.WithRequestTimeout(ctx)
	defer cancel()

	output, err := c.client.Chat.Completions.New(ctx, c.buildParams(messages))
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindProvider, err, "unable to invoke model")
	}
	if len(output.Choices) == 0 {
		return nil, llms.NewError(providerName, llms.ErrKindDecode, nil, "no choices in response")
	}

	choice := output.Choices[0]
	return &llms.GenerateResult{
		Generation: choice.Message.Content,
		StopReason: choice.FinishReason,
		Usage: &llms.Usage{
			InputTokens:  int(output.Usage.PromptTokens),
			OutputTokens: int(output.Usage.CompletionTokens),
			TotalTokens:  int(output.Usage.TotalTokens),
		},
	}, nil
}

func (c *Client) buildParams(messages []schema.Message) openai.ChatCompletionNewParams {
	modelID := c.modelID
	if c.opts.Model != nil {
		modelID = *c.opts.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelID),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}

	for _, msg := range messages {
		switch msg.Role {
		case schema.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case schema.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}

	if c.opts.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*c.opts.MaxTokens))
	}
	if c.opts.Temperature != nil {
		params.Temperature = openai.Float(*c.opts.Temperature)
	}
	if c.opts.TopP != nil {
		params.TopP = openai.Float(*c.opts.TopP)
	}
	if c.opts.StopWords != nil {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: *c.opts.StopWords}
	}
	// TopK is not part of the chat completions API and is ignored here.

	return params
}
