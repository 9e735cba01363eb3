package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/analyzer"
	"github.com/jonathan/smartmatch-advisor/internal/config"
	"github.com/jonathan/smartmatch-advisor/internal/ingest"
	"github.com/jonathan/smartmatch-advisor/internal/llm"
	"github.com/jonathan/smartmatch-advisor/internal/observability"
	"github.com/jonathan/smartmatch-advisor/internal/server"
	"github.com/jonathan/smartmatch-advisor/internal/store"
)

var (
	servePort    int
	serveBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the analysis pipeline, with optional run history and job URL ingestion.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false, "Render JavaScript-heavy job pages in a headless browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	completer, embedder, closeLLM, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLLM()

	opts := server.Options{
		Port:          cfg.Port,
		Analyzer:      analyzer.New(cfg, completer, embedder, log),
		Fetcher:       ingest.NewFetcher(0, serveBrowser, log),
		JWTSecret:     cfg.JWTSecret,
		AllowedOrigin: cfg.FrontendURL,
		Model:         cfg.Model,
		Log:           log,
	}

	if cfg.DatabaseURL != "" {
		st, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Init(ctx); err != nil {
			return err
		}
		opts.Store = st
		log.Info("run history enabled")
	}

	return server.New(opts).Start()
}

// buildLLM connects the Gemini client when an API key is configured. With
// no key the pipeline runs degraded: heuristic keywords, rule-based
// scoring, no semantic signal, no bullet suggestions.
func buildLLM(ctx context.Context, cfg *config.Config, log *zap.Logger) (llm.Completer, llm.Embedder, func(), error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn("no API key configured, running in degraded mode")
		return nil, nil, func() {}, nil
	}

	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.EmbeddingModel, cfg.Temperature)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, client, func() { _ = client.Close() }, nil
}
