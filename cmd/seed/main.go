package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
	"github.com/pasha-github/claimsaipocbuilder1/internal/seed"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

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
	st, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to open record store")
	}
	defer cleanup()

	if err := seed.Run(ctx, st); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	logger.Info("seed data loaded")
}
