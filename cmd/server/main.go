package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/finadvise/finadvise/internal/advisor"
	"github.com/finadvise/finadvise/internal/api"
	"github.com/finadvise/finadvise/internal/config"
	"github.com/finadvise/finadvise/internal/logging"
	"github.com/finadvise/finadvise/internal/metrics"
	"github.com/finadvise/finadvise/internal/server"
	"log/slog"
)

func main() {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting finadvise")

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	var completer advisor.Completer
	if cfg.Completion.APIKey != "" {
		completer = advisor.NewCompletionClient(cfg.Completion.APIKey, advisor.CompletionConfig{
			Model:       cfg.Completion.Model,
			Temperature: cfg.Completion.Temperature,
			MaxTokens:   cfg.Completion.MaxTokens,
			CallTimeout: cfg.Completion.CallTimeout,
			MaxRetries:  cfg.Completion.MaxRetries,
			BaseDelay:   cfg.Completion.BaseDelay,
		}, logger)
		logger.Info("completion service configured", "model", cfg.Completion.Model)
	} else {
		logger.Warn("OPENAI_API_KEY not set, all recommendations will use the fallback rule engine")
	}

	engine := advisor.NewEngine(completer, logger, collector)
	handler := api.NewHandler(engine, logger)
	router := api.NewRouter(handler, collector)

	srv := server.New(cfg.Server, logger, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("received signal", "signal", sig.String())
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("finadvise stopped")
}
