package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/stackmeld/llmchain/internal/setup"
	"github.com/stackmeld/llmchain/internal/setup/logger"
	"github.com/stackmeld/llmchain/internal/stream"
	"github.com/stackmeld/llmchain/internal/stream/redis"
)

func main() {
	logg := logger.Console(os.Getenv("LOG_LEVEL"))
	log.Logger = logg

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	streamCfg := &stream.Config{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redis.NewStreamConfig(
			getEnv("REDIS_ADDR", "localhost:6379"),
			os.Getenv("REDIS_PASSWORD"),
			getEnv("GENERATION_STREAM", "generation-requests"),
			getEnv("GENERATION_GROUP", "generation-workers"),
			os.Getenv("HOSTNAME"),
			getEnv("GENERATION_RESULT_STREAM", "generation-results"),
		),
	}

	consumer, err := stream.NewConsumer(ctx, streamCfg, deps.Runner, &logg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	log.Info().Strs("chains", deps.Runner.Names()).Msg("Worker ready")

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Consumer stopped with error")
	}

	_ = consumer.Stop()
	log.Info().Msg("Worker stopped")
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return value
}
