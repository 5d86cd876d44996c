// Package inbox polls a drop folder for claim files and feeds them through
// the ingestion pipeline.
package inbox

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pasha-github/claimsaipocbuilder1/internal/ingest"
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
	"github.com/pasha-github/claimsaipocbuilder1/pkg/checksum"
)

// Submitter takes one drafted claim through persistence and decisioning.
type Submitter interface {
	Submit(ctx context.Context, draft models.Claim) (*models.Claim, error)
}

type Watcher struct {
	dir      string
	interval time.Duration
	pipeline Submitter
	log      *logrus.Logger

	// content checksums ingested by this process, so a file that could not
	// be removed is not submitted twice
	seen map[string]bool
}

func NewWatcher(dir string, interval time.Duration, p Submitter, log *logrus.Logger) *Watcher {
	return &Watcher{
		dir:      dir,
		interval: interval,
		pipeline: p,
		log:      log,
		seen:     make(map[string]bool),
	}
}

// Run polls the inbox until the context is canceled. A failure on one file
// never stops the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.pollOnce(ctx)
		}
	}
}

func (w *Watcher) pollOnce(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.log.WithError(err).Warn("failed to read inbox directory")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := ingest.FormatForFile(filepath.Ext(entry.Name()))
		if !ok {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, entry.Name()), format)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string, format ingest.Format) {
	log := w.log.WithField("file", path)

	sum, err := checksum.File(path)
	if err != nil {
		log.WithError(err).Warn("failed to checksum inbox file, skipping")
		return
	}
	if w.seen[sum] {
		log.Info("inbox file already ingested, removing")
		w.remove(path)
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("failed to read inbox file, skipping")
		return
	}

	batch, err := ingest.Parse(raw, format)
	if err != nil {
		log.WithError(err).Warn("failed to parse inbox file, removing")
		w.seen[sum] = true
		w.remove(path)
		return
	}

	for _, draft := range batch.Claims {
		claim, err := w.pipeline.Submit(ctx, draft)
		if err != nil {
			log.WithError(err).Error("failed to submit inbox claim")
			return // keep the file for the next poll
		}
		log.WithFields(logrus.Fields{
			"claim":  claim.ID,
			"status": claim.Status,
		}).Info("inbox claim processed")
	}

	w.seen[sum] = true
	w.remove(path)
}

func (w *Watcher) remove(path string) {
	if err := os.Remove(path); err != nil {
		w.log.WithField("file", path).WithError(err).Warn("failed to remove inbox file")
	}
}
