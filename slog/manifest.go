package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rashidq/nezamdoc"
)

// Ensure LoggingManifestStore implements nezamdoc.ManifestStore.
var _ nezamdoc.ManifestStore = (*LoggingManifestStore)(nil)

// LoggingManifestStore wraps a ManifestStore with operation logging.
type LoggingManifestStore struct {
	next   nezamdoc.ManifestStore
	logger *slog.Logger
}

// NewLoggingManifestStore creates a new LoggingManifestStore.
func NewLoggingManifestStore(next nezamdoc.ManifestStore, logger *slog.Logger) *LoggingManifestStore {
	return &LoggingManifestStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingManifestStore) Save(ctx context.Context, items []nezamdoc.Item) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manifest save",
			"path", path,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, items)
}

// Load delegates to the wrapped store and logs the operation.
func (s *LoggingManifestStore) Load(ctx context.Context, path string) (items []nezamdoc.Item, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manifest load",
			"path", path,
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, path)
}
