package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/stackmeld/llmchain/internal/models"
	"github.com/stackmeld/llmchain/internal/setup/logger"
	"github.com/stackmeld/llmchain/internal/stream/redis"
)

func main() {
	data := flag.String("d", "", "Inline JSON GenerationRequest")
	stream := flag.String("stream", "generation-requests", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Logger = logger.Console(os.Getenv("LOG_LEVEL"))

	if err := run(*data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	var req models.GenerationRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &goredis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("request_id", req.RequestID).Msg("Published successfully!")
	return nil
}
