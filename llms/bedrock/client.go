// Package bedrock implements the llms.Model contract for Anthropic
// Claude models served through AWS Bedrock.
package bedrock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stackmeld/llmchain/llms"
)

const providerName = "bedrock"

// Client invokes a Claude model on Bedrock. Fold options in with
// AddOptions before serving traffic; the client does not guard the
// option set against concurrent mutation.
type Client struct {
	client  *bedrockruntime.Client
	modelID string
	opts    llms.CallOptions
}

var _ llms.Model = (*Client)(nil)

func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, llms.NewError(providerName, llms.ErrKindRequest, err, "unable to load AWS config")
	}

	return &Client{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// NewClientFromAPI wires an existing bedrockruntime client, used by tests.
func NewClientFromAPI(client *bedrockruntime.Client, modelID string) *Client {
	return &Client{client: client, modelID: modelID}
}

func (c *Client) AddOptions(opts llms.CallOptions) {
	c.opts.Merge(opts)
}

func (c *Client) resolveModelID() string {
	if c.opts.Model != nil {
		return *c.opts.Model
	}
	return c.modelID
}
