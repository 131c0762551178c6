package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/mock"
	nezamslog "github.com/rashidq/nezamdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDocumentWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("logs write with path and styled flag", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentWriter{
			WriteFn: func(_ context.Context, _ *nezamdoc.Document, path string) (*nezamdoc.WriteInfo, error) {
				return &nezamdoc.WriteInfo{Path: path, Styled: true}, nil
			},
		}

		w := nezamslog.NewLoggingDocumentWriter(inner, logger)
		info, err := w.Write(context.Background(), &nezamdoc.Document{Title: "نظام العمل", Body: "نص"}, "out/doc.docx")

		require.NoError(t, err)
		assert.True(t, info.Styled)
		output := buf.String()
		assert.Contains(t, output, "document write")
		assert.Contains(t, output, "path=out/doc.docx")
		assert.Contains(t, output, "styled=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentWriter{
			WriteFn: func(_ context.Context, _ *nezamdoc.Document, _ string) (*nezamdoc.WriteInfo, error) {
				return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "document title required")
			},
		}

		w := nezamslog.NewLoggingDocumentWriter(inner, logger)
		_, err := w.Write(context.Background(), &nezamdoc.Document{}, "out/doc.docx")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "document write")
		assert.Contains(t, output, "styled=false")
		assert.Contains(t, output, "err=")
	})
}
