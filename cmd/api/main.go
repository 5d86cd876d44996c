package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
	"github.com/pasha-github/claimsaipocbuilder1/internal/notify"
	"github.com/pasha-github/claimsaipocbuilder1/internal/pipeline"
	"github.com/pasha-github/claimsaipocbuilder1/internal/server"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to open record store")
	}
	defer cleanup()

	notifier := notify.FromConfig(cfg, logger)
	processor := pipeline.New(st, notifier, logger)
	svc := server.NewClaimService(st, processor, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.APIPort),
		Handler: server.SetupRoutes(svc),
	}

	go func() {
		logger.WithField("port", cfg.APIPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
}
