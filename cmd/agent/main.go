package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
	"github.com/pasha-github/claimsaipocbuilder1/internal/notify"
	"github.com/pasha-github/claimsaipocbuilder1/internal/pipeline"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

// One-shot batch run: decision every claim still in submitted status.
func main() {
	logger := config.NewLogger()

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Warn("could not load .env file")
	}

	cfg, err := config.New()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	ctx := context.Background()
	startTime := time.Now()

	st, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to open record store")
	}
	defer cleanup()

	processor := pipeline.New(st, notify.FromConfig(cfg, logger), logger)

	processed, err := processor.RunPending(ctx, cfg.NumPipelineWorkers)
	if err != nil {
		logger.WithError(err).Fatal("batch run failed")
	}

	logger.WithField("processed", processed).
		WithField("elapsed", time.Since(startTime).String()).
		Info("batch run finished")
}
