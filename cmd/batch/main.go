package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/stackmeld/llmchain/internal/batch"
	"github.com/stackmeld/llmchain/internal/setup"
	"github.com/stackmeld/llmchain/internal/setup/logger"
)

func main() {
	startTime := time.Now()

	log.Logger = logger.Console(os.Getenv("LOG_LEVEL"))

	input := flag.String("input", "", "Input JSONL file of generation requests")
	output := flag.String("output", "", "Output JSONL file (default: stdout)")
	workers := flag.Int("workers", 5, "Concurrent generation workers")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logg := log.Logger
	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	in, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("Failed to open input file")
	}
	defer in.Close()

	sink := os.Stdout
	if *output != "" {
		sink, err = os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("path", *output).Msg("Failed to create output file")
		}
		defer sink.Close()
	}

	reader := batch.NewReader(in, &logg)
	processor := batch.NewProcessor(deps.Runner, *workers, &logg)
	writer := batch.NewWriter(sink)

	var total, failed int
	for result := range processor.Process(ctx, reader.ReadAll(ctx)) {
		total++
		if result.Error != "" {
			failed++
		}
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("request_id", result.RequestID).Msg("Failed to write result")
		}
	}

	log.Info().
		Int("total", total).
		Int("failed", failed).
		Dur("duration", time.Since(startTime)).
		Msg("Batch complete")
}
