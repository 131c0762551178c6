package pdfpage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/pdfpage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates empty files under dir, creating subdirectories as
// needed. Contents never matter: tests inject CountFn.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	}
}

func TestCounter_CountDir(t *testing.T) {
	t.Parallel()

	t.Run("counts PDF files ordered by path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "c.pdf", "a.pdf", "b.pdf", "notes.txt")

		pages := map[string]int{"a.pdf": 3, "b.pdf": 10, "c.pdf": 1}
		counter := &pdfpage.Counter{
			CountFn: func(path string) (int, error) {
				return pages[filepath.Base(path)], nil
			},
		}

		counts, err := counter.CountDir(context.Background(), dir, false)

		require.NoError(t, err)
		require.Len(t, counts, 3)
		assert.Equal(t, pdfpage.Count{Path: "a.pdf", Pages: 3}, counts[0])
		assert.Equal(t, pdfpage.Count{Path: "b.pdf", Pages: 10}, counts[1])
		assert.Equal(t, pdfpage.Count{Path: "c.pdf", Pages: 1}, counts[2])
	})

	t.Run("ignores subdirectories unless recursive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "top.pdf", filepath.Join("sub", "nested.pdf"))

		counter := &pdfpage.Counter{
			CountFn: func(_ string) (int, error) { return 2, nil },
		}

		counts, err := counter.CountDir(context.Background(), dir, false)
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, "top.pdf", counts[0].Path)

		counts, err = counter.CountDir(context.Background(), dir, true)
		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, filepath.Join("sub", "nested.pdf"), counts[0].Path)
		assert.Equal(t, "top.pdf", counts[1].Path)
	})

	t.Run("keeps counting past a corrupt file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "good.pdf", "broken.pdf")

		counter := &pdfpage.Counter{
			CountFn: func(path string) (int, error) {
				if filepath.Base(path) == "broken.pdf" {
					return 0, errors.New("malformed xref table")
				}
				return 7, nil
			},
		}

		counts, err := counter.CountDir(context.Background(), dir, false)

		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Error(t, counts[0].Err)
		assert.Equal(t, "broken.pdf", counts[0].Path)
		require.NoError(t, counts[1].Err)
		assert.Equal(t, 7, counts[1].Pages)
	})

	t.Run("returns ENOTFOUND for a missing folder", func(t *testing.T) {
		t.Parallel()

		counter := &pdfpage.Counter{}
		_, err := counter.CountDir(context.Background(), filepath.Join(t.TempDir(), "missing"), false)

		require.Error(t, err)
		assert.Equal(t, nezamdoc.ENOTFOUND, nezamdoc.ErrorCode(err))
	})

	t.Run("returns EINVALID when the path is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "only.pdf")

		counter := &pdfpage.Counter{}
		_, err := counter.CountDir(context.Background(), filepath.Join(dir, "only.pdf"), false)

		require.Error(t, err)
		assert.Equal(t, nezamdoc.EINVALID, nezamdoc.ErrorCode(err))
	})

	t.Run("returns no counts for a folder without PDFs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "readme.md")

		counter := &pdfpage.Counter{
			CountFn: func(_ string) (int, error) { return 1, nil },
		}

		counts, err := counter.CountDir(context.Background(), dir, false)

		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "a.pdf")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		counter := &pdfpage.Counter{
			CountFn: func(_ string) (int, error) { return 1, nil },
		}

		_, err := counter.CountDir(ctx, dir, false)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestTotal(t *testing.T) {
	t.Parallel()

	counts := []pdfpage.Count{
		{Path: "a.pdf", Pages: 3},
		{Path: "b.pdf", Pages: 0, Err: errors.New("malformed")},
		{Path: "c.pdf", Pages: 4},
	}

	assert.Equal(t, 7, pdfpage.Total(counts))
	assert.Equal(t, 0, pdfpage.Total(nil))
}
