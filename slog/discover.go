package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rashidq/nezamdoc"
)

// Ensure LoggingDiscoverer implements nezamdoc.Discoverer.
var _ nezamdoc.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with operation logging.
type LoggingDiscoverer struct {
	next   nezamdoc.Discoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next nezamdoc.Discoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation.
func (d *LoggingDiscoverer) Discover(ctx context.Context) (items []nezamdoc.Item, err error) {
	defer func(begin time.Time) {
		d.logger.Info("item discovery",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx)
}
