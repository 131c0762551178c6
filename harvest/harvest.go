// Package harvest provides the harvesting pipeline orchestration.
// It coordinates item discovery, manifest persistence, per-item content
// extraction, and document output for one site at a time.
package harvest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/rashidq/nezamdoc"
)

// Harvester extracts and saves the documents for a list of items.
// Errors on one item never abort the loop: each item ends in a terminal
// outcome and the next one starts fresh.
type Harvester struct {
	Page    nezamdoc.Page
	Locator nezamdoc.Locator
	Cleaner nezamdoc.Cleaner
	Writer  nezamdoc.DocumentWriter
	Site    *nezamdoc.Site
}

// Result holds the aggregate outcome of a harvest.
type Result struct {
	Attempted int
	Saved     int
	Skipped   int
	Failed    int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Item      nezamdoc.Item
	Outcome   nezamdoc.Outcome
	Path      string
	Hash      string
	Styled    bool
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single item.
type itemResult struct {
	outcome nezamdoc.Outcome
	path    string
	hash    string
	styled  bool
	err     error
}

// HarvestAll processes items sequentially and reports each item's
// terminal outcome through progress. It returns early only when the
// context is cancelled; per-item failures are absorbed into the result.
func (h *Harvester) HarvestAll(ctx context.Context, items []nezamdoc.Item, progress ProgressFunc) (*Result, error) {
	total := len(items)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var result Result
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return &result, err
		}

		res := h.harvestItem(ctx, item)
		result.Attempted++

		event := ProgressEvent{
			Completed: i + 1,
			Total:     total,
			Item:      item,
			Outcome:   res.outcome,
			Path:      res.path,
			Hash:      res.hash,
			Styled:    res.styled,
			Error:     res.err,
		}
		switch res.outcome {
		case nezamdoc.OutcomeSaved:
			result.Saved++
			event.Type = ProgressSaved
		case nezamdoc.OutcomeFailed:
			result.Failed++
			event.Type = ProgressFailed
		default:
			result.Skipped++
			event.Type = ProgressSkipped
		}
		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return &result, nil
}

// harvestItem runs one item through locate, extract, clean and write.
func (h *Harvester) harvestItem(ctx context.Context, item nezamdoc.Item) itemResult {
	if err := h.Locator.Locate(ctx, item); err != nil {
		return itemResult{outcome: locateOutcome(err), err: err}
	}

	title := h.extractTitle(ctx, item)

	contentCtx, cancel := context.WithTimeout(ctx, h.Site.Timeouts.Content)
	fragment, err := h.Page.HTML(contentCtx, h.Site.ContentSelector)
	cancel()
	if err != nil {
		if nezamdoc.ErrorCode(err) == nezamdoc.ENOTFOUND {
			return itemResult{outcome: nezamdoc.OutcomeSkippedNoContent, err: err}
		}
		return itemResult{outcome: nezamdoc.OutcomeFailed, err: err}
	}

	body, err := h.Cleaner.Clean(fragment)
	if err != nil {
		if nezamdoc.ErrorCode(err) == nezamdoc.ENOTFOUND {
			return itemResult{outcome: nezamdoc.OutcomeSkippedNoContent, err: err}
		}
		return itemResult{outcome: nezamdoc.OutcomeFailed, err: err}
	}

	path := filepath.Join(h.Site.OutputDir, h.Site.FileTitle(title)+".docx")
	info, err := h.Writer.Write(ctx, &nezamdoc.Document{Title: title, Body: body}, path)
	if err != nil {
		return itemResult{outcome: nezamdoc.OutcomeFailed, err: err}
	}

	return itemResult{
		outcome: nezamdoc.OutcomeSaved,
		path:    info.Path,
		hash:    ComputeHash(body),
		styled:  info.Styled,
	}
}

// extractTitle reads the rendered title. Sites without a title selector
// title their documents by item name; a configured selector that yields
// nothing falls back to the site's fallback title.
func (h *Harvester) extractTitle(ctx context.Context, item nezamdoc.Item) string {
	if h.Site.TitleSelector == "" {
		if item.Name != "" {
			return item.Name
		}
		return h.Site.FallbackTitle
	}

	title, err := h.Page.Text(ctx, h.Site.TitleSelector)
	if err != nil || title == "" {
		return h.Site.FallbackTitle
	}
	return title
}

// locateOutcome maps a locate error to the item outcome: an item the
// page cannot match is a no-match skip, content that never rendered in
// time is a no-content skip, anything else is a failure.
func locateOutcome(err error) nezamdoc.Outcome {
	switch nezamdoc.ErrorCode(err) {
	case nezamdoc.ENOTFOUND:
		return nezamdoc.OutcomeSkippedNoMatch
	case nezamdoc.ETIMEOUT:
		return nezamdoc.OutcomeSkippedNoContent
	default:
		return nezamdoc.OutcomeFailed
	}
}

// ComputeHash computes a hash of the content using xxhash. Hashes let
// later runs detect unchanged documents without re-reading files.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
