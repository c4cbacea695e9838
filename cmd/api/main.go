package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/stackmeld/llmchain/internal/api"
	"github.com/stackmeld/llmchain/internal/api/middleware"
	"github.com/stackmeld/llmchain/internal/setup"
	"github.com/stackmeld/llmchain/internal/setup/logger"

	"context"
)

func main() {
	logg := logger.Console(os.Getenv("LOG_LEVEL"))
	log.Logger = logg

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// API
	handler := api.NewHandler(deps.Runner, &logg)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	port := os.Getenv("LLMCHAIN_API_PORT")
	if port == "" {
		port = "18080"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Strs("chains", deps.Runner.Names()).Msg("Starting chain API")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
