// Package pdfpage reports page counts for PDF files on disk. It backs
// the pagecount command, a standalone batch utility unrelated to the
// harvesting pipeline.
package pdfpage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rashidq/nezamdoc"
	"golang.org/x/sync/errgroup"
)

// Count is the result for one PDF file. Path is relative to the scanned
// directory. A non-nil Err means the file could not be counted; other
// files are unaffected.
type Count struct {
	Path  string
	Pages int
	Err   error
}

// Counter scans a directory for PDF files and counts their pages.
type Counter struct {
	// CountFn counts the pages of one file. Defaults to pdfcpu.
	CountFn func(path string) (int, error)

	// Concurrency bounds parallel counting. Defaults to GOMAXPROCS.
	Concurrency int
}

// CountDir counts the pages of every .pdf file under dir, descending
// into subdirectories when recursive is set. Results are ordered by
// path. Files that fail to parse carry their error in the result rather
// than failing the scan.
func (c *Counter) CountDir(ctx context.Context, dir string, recursive bool) ([]Count, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nezamdoc.Errorf(nezamdoc.ENOTFOUND, "folder %s does not exist", dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nezamdoc.Errorf(nezamdoc.EINVALID, "%s is not a folder", dir)
	}

	paths, err := findPDFs(dir, recursive)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	counts := make([]Count, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, rel := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pages, err := c.countFn()(filepath.Join(dir, rel))
			counts[i] = Count{Path: rel, Pages: pages, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return counts, nil
}

// Total sums the pages of the successfully counted files.
func Total(counts []Count) int {
	var total int
	for _, count := range counts {
		if count.Err == nil {
			total += count.Pages
		}
	}
	return total
}

func (c *Counter) countFn() func(string) (int, error) {
	if c.CountFn != nil {
		return c.CountFn
	}
	return api.PageCountFile
}

func (c *Counter) limit() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// findPDFs returns dir-relative paths of the .pdf files under dir.
func findPDFs(dir string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var paths []string
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				paths = append(paths, entry.Name())
			}
		}
		return paths, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPDF(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
