package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rashidq/nezamdoc"
)

// Ensure LoggingDocumentWriter implements nezamdoc.DocumentWriter.
var _ nezamdoc.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with operation logging.
type LoggingDocumentWriter struct {
	next   nezamdoc.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next nezamdoc.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// Write delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) Write(ctx context.Context, doc *nezamdoc.Document, path string) (info *nezamdoc.WriteInfo, err error) {
	defer func(begin time.Time) {
		styled := info != nil && info.Styled
		w.logger.Info("document write",
			"path", path,
			"styled", styled,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Write(ctx, doc, path)
}
