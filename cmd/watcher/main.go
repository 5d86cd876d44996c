package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pasha-github/claimsaipocbuilder1/internal/config"
	"github.com/pasha-github/claimsaipocbuilder1/internal/inbox"
	"github.com/pasha-github/claimsaipocbuilder1/internal/notify"
	"github.com/pasha-github/claimsaipocbuilder1/internal/pipeline"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

// Inbox poller daemon: picks up claim files dropped into INBOX_DIR.
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

	processor := pipeline.New(st, notify.FromConfig(cfg, logger), logger)
	watcher := inbox.NewWatcher(cfg.InboxDir, cfg.PollInterval, processor, logger)

	logger.WithField("dir", cfg.InboxDir).Info("watching inbox")
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("watcher stopped")
	}
}
