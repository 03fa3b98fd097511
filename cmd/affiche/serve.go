package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/affiche-studio/affiche"
	"github.com/affiche-studio/affiche/infrastructure/api"
	"github.com/affiche-studio/affiche/infrastructure/vision"
	"github.com/affiche-studio/affiche/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
		apiKeys []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (AFFICHE_ prefix):
  AFFICHE_HOST                 Server host to bind to (default: 0.0.0.0)
  AFFICHE_PORT                 Server port to listen on (default: 8080)
  AFFICHE_DATA_DIR             Data directory (default: ~/.affiche)
  AFFICHE_DB_URL               Database URL (default: sqlite://{data_dir}/affiche.db)
  AFFICHE_LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  AFFICHE_LOG_FORMAT           Log format: pretty, json (default: pretty)
  AFFICHE_API_KEYS             Comma-separated list of valid API keys
  AFFICHE_WIKIPEDIA_BASE_URL   Structured-data source (default: https://en.wikipedia.org)
  AFFICHE_ENRICHMENT_TIMEOUT_SECONDS  Bound on one enrichment fetch (default: 15)

  AFFICHE_VISION_*             Image-analysis AI service configuration
    BASE_URL                   OpenAI-compatible base URL
    MODEL                      Model identifier (default: gpt-4o)
    API_KEY                    API key for authentication`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port, apiKeys)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")
	cmd.Flags().StringSliceVar(&apiKeys, "api-key", nil, "API key for write protection (repeatable)")

	return cmd
}

func runServe(envFile, host string, port int, apiKeys []string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	addr := cfg.Addr()
	if host != "" || port != 0 {
		h := cfg.Host()
		if host != "" {
			h = host
		}
		p := cfg.Port()
		if port != 0 {
			p = port
		}
		addr = fmt.Sprintf("%s:%d", h, p)
	}

	logger := log.NewLogger(cfg)

	opts := []affiche.Option{
		affiche.WithDataDir(cfg.DataDir()),
		affiche.WithDatabaseURL(cfg.DBURL()),
		affiche.WithWikipediaBaseURL(cfg.WikipediaBaseURL()),
		affiche.WithEnrichmentTimeout(cfg.EnrichmentTimeout()),
		affiche.WithLogger(logger),
	}
	keys := cfg.APIKeys()
	if len(apiKeys) > 0 {
		keys = apiKeys
	}
	if len(keys) > 0 {
		opts = append(opts, affiche.WithAPIKeys(keys...))
	}
	if v := cfg.Vision(); v.Configured() {
		opts = append(opts, affiche.WithVision(vision.Config{
			APIKey:  v.APIKey(),
			BaseURL: v.BaseURL(),
			Model:   v.Model(),
		}))
	}

	logger.Info("starting affiche",
		slog.String("version", version),
		slog.String("addr", addr),
		slog.String("data_dir", cfg.DataDir()))

	client, err := affiche.New(opts...)
	if err != nil {
		return fmt.Errorf("create affiche client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close affiche client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client)

	server := api.NewServer(addr, logger)
	server.Router().Mount("/", apiServer.Handler())
	server.Router().Get("/health", healthHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
		}
	}()

	return server.Start()
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
