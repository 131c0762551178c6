package mock

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

var _ nezamdoc.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of nezamdoc.DocumentWriter.
type DocumentWriter struct {
	WriteFn func(ctx context.Context, doc *nezamdoc.Document, path string) (*nezamdoc.WriteInfo, error)
}

func (w *DocumentWriter) Write(ctx context.Context, doc *nezamdoc.Document, path string) (*nezamdoc.WriteInfo, error) {
	return w.WriteFn(ctx, doc, path)
}
