package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stackmeld/llmchain/internal/models"
	"github.com/stackmeld/llmchain/internal/runner"
)

// GenerateInput is the MCP tool input schema (matches the worker's
// request field names).
type GenerateInput struct {
	Chain  string            `json:"chain" jsonschema:"name of the chain to run"`
	Inputs map[string]string `json:"inputs" jsonschema:"input variable values for the chain's prompt"`
}

// NewGenerateHandler returns a tool handler that runs the named chain.
// Pass the returned function to mcp.AddTool.
func NewGenerateHandler(run *runner.Runner) func(context.Context, *mcp.CallToolRequest, GenerateInput) (*mcp.CallToolResult, models.GenerationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, models.GenerationResult, error) {
		return Generate(ctx, run, req, input)
	}
}

// Generate runs the chain and returns the generation result.
func Generate(
	ctx context.Context,
	run *runner.Runner,
	req *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, models.GenerationResult, error) {
	args := make(map[string]any, len(input.Inputs))
	for k, v := range input.Inputs {
		args[k] = v
	}

	result, err := run.Call(ctx, input.Chain, args)
	if err != nil {
		return nil, models.GenerationResult{}, err
	}

	return nil, models.GenerationResult{
		Chain:      input.Chain,
		Output:     result.Generation,
		StopReason: result.StopReason,
	}, nil
}

// ListChainsInput is empty; the tool takes no arguments.
type ListChainsInput struct{}

// ListChainsOutput names the chains the server can run.
type ListChainsOutput struct {
	Chains []string `json:"chains" jsonschema:"names of the registered chains"`
}

// NewListChainsHandler returns a tool handler that lists the registered
// chains.
func NewListChainsHandler(run *runner.Runner) func(context.Context, *mcp.CallToolRequest, ListChainsInput) (*mcp.CallToolResult, ListChainsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListChainsInput) (*mcp.CallToolResult, ListChainsOutput, error) {
		return nil, ListChainsOutput{Chains: run.Names()}, nil
	}
}
