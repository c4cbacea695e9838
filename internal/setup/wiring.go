package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	cfgpkg "github.com/stackmeld/llmchain/internal/config"
	"github.com/stackmeld/llmchain/internal/runner"
	"github.com/stackmeld/llmchain/llms"
	"github.com/stackmeld/llmchain/llms/bedrock"
	"github.com/stackmeld/llmchain/llms/openai"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
}

type Dependencies struct {
	Runner *runner.Runner
	Logger *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
	}
}

// Wire loads the chain definitions and builds the runner serving them.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	chainsConfig, err := cfgpkg.LoadChainsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load chains config: %w", err)
	}

	factory := func(ctx context.Context, modelCfg cfgpkg.ModelConfig) (llms.Model, error) {
		return createModelClient(ctx, cfg, modelCfg)
	}

	run, err := runner.FromConfig(ctx, chainsConfig, factory, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build chains: %w", err)
	}

	return &Dependencies{
		Runner: run,
		Logger: logger,
	}, nil
}

func createModelClient(ctx context.Context, cfg *Config, modelCfg cfgpkg.ModelConfig) (llms.Model, error) {
	provider := modelCfg.Provider
	if provider == "" {
		provider = cfg.DefaultProvider
	}

	switch provider {
	case "bedrock":
		modelID := modelCfg.ModelID
		if modelID == "" {
			modelID = cfg.ClaudeModelID
		}
		return bedrock.NewClient(ctx, cfg.AWSRegion, modelID)
	case "openai":
		modelID := modelCfg.ModelID
		if modelID == "" {
			modelID = cfg.OpenAIModelID
		}
		return openai.NewClient(cfg.OpenAIKey, modelID)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
