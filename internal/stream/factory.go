package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/internal/runner"
	"github.com/stackmeld/llmchain/internal/stream/redis"
)

type Config struct {
	Provider    string // redis for now; kafka, sqs later
	RedisConfig *redis.StreamConfig
}

func NewConsumer(
	ctx context.Context,
	cfg *Config,
	run *runner.Runner,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redis.Connect(ctx, cfg.RedisConfig.Addr, cfg.RedisConfig.Password, 5)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, run, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", provider)
	}
}
