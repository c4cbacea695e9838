package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"github.com/stackmeld/llmchain/internal/mcpadapter"
	"github.com/stackmeld/llmchain/internal/setup"
	"github.com/stackmeld/llmchain/internal/setup/logger"
)

func main() {
	logg := logger.Console(os.Getenv("LOG_LEVEL"))
	log.Logger = logg

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logg)
	if err != nil {
		logg.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	server := createMCPServer(deps)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logg.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logg.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(deps *setup.Dependencies) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "llmchain",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Run a configured prompt chain with the given inputs and return the generated text",
	}, mcpadapter.NewGenerateHandler(deps.Runner))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_chains",
		Description: "List the prompt chains this server can run",
	}, mcpadapter.NewListChainsHandler(deps.Runner))

	return server
}
