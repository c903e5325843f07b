package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/app"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/config"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/constants"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("YouTube notes bot starting...",
		zap.String("log_level", cfg.Logging.Level),
		zap.String("prefix", cfg.Bot.Prefix),
		zap.String("preset", cfg.Notes.Preset),
	)
	if !cfg.HasSummarizer() {
		logger.Warn("No GEMINI_API_KEY or GOOGLE_API_KEY set and no OpenAI fallback; notes requests will fail until one is configured")
	}

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if !container.Iris().Ping(pingCtx) {
		logger.Warn("Iris HTTP API not reachable yet", zap.String("url", cfg.Iris.BaseURL))
	}
	pingCancel()

	notesBot, err := container.NewBot()
	if err != nil {
		logger.Error("Failed to initialize bot", zap.Error(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := notesBot.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	logger.Info("Bot started, waiting for signals...")

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Bot error", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownConfig.Timeout)
	defer shutdownCancel()

	if err := notesBot.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
