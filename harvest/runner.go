package harvest

import (
	"context"
	"log/slog"
	"time"

	"github.com/rashidq/nezamdoc"
)

// Runner executes the two-stage pipeline for one site: discovery writes
// today's manifest, extraction reloads the manifest from disk and
// harvests every item in it. Reloading from the file rather than
// passing items in memory keeps the manifest authoritative: what was
// harvested is exactly what the file says.
type Runner struct {
	Discoverer nezamdoc.Discoverer
	Manifests  nezamdoc.ManifestStore
	Harvester  *Harvester

	// Runs, when set, records the run and its per-item outcomes.
	Runs nezamdoc.RunService

	// Logger, when set, receives pipeline diagnostics.
	Logger *slog.Logger
}

// RunSummary reports a completed pipeline run.
type RunSummary struct {
	RunID        string
	ManifestPath string
	Discovered   int
	Result       Result
}

// Discover runs the discovery stage and writes today's manifest.
// Discovery errors are fatal and leave no manifest behind.
func (r *Runner) Discover(ctx context.Context) (string, int, error) {
	items, err := r.Discoverer.Discover(ctx)
	if err != nil {
		return "", 0, err
	}

	path, err := r.Manifests.Save(ctx, items)
	if err != nil {
		return "", 0, err
	}

	r.logger().Info("discovery finished", "site", r.Harvester.Site.Name, "items", len(items), "manifest", path)
	return path, len(items), nil
}

// Extract reloads the manifest at path and harvests its items,
// recording outcomes when a run service is configured.
func (r *Runner) Extract(ctx context.Context, path string, progress ProgressFunc) (*RunSummary, error) {
	items, err := r.Manifests.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	run := &nezamdoc.Run{
		Site:         r.Harvester.Site.Name,
		ManifestPath: path,
		StartedAt:    time.Now(),
	}
	if r.Runs != nil {
		if err := r.Runs.CreateRun(ctx, run); err != nil {
			return nil, err
		}
	}

	result, harvestErr := r.Harvester.HarvestAll(ctx, items, func(event ProgressEvent) {
		r.recordItem(ctx, run.ID, event)
		if progress != nil {
			progress(event)
		}
	})

	if r.Runs != nil {
		finished := time.Now()
		upd := nezamdoc.RunUpdate{
			FinishedAt: &finished,
			Attempted:  &result.Attempted,
			Saved:      &result.Saved,
			Skipped:    &result.Skipped,
			Failed:     &result.Failed,
		}
		if _, err := r.Runs.UpdateRun(ctx, run.ID, upd); err != nil {
			r.logger().Warn("recording run summary failed", "run", run.ID, "err", err)
		}
	}
	if harvestErr != nil {
		return nil, harvestErr
	}

	r.logger().Info("extraction finished",
		"site", r.Harvester.Site.Name,
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return &RunSummary{
		RunID:        run.ID,
		ManifestPath: path,
		Discovered:   len(items),
		Result:       *result,
	}, nil
}

// Run executes discovery followed by extraction.
func (r *Runner) Run(ctx context.Context, progress ProgressFunc) (*RunSummary, error) {
	path, _, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return r.Extract(ctx, path, progress)
}

// recordItem persists one item outcome. Recording failures are logged
// and swallowed: losing a history row is better than abandoning a
// harvest in flight.
func (r *Runner) recordItem(ctx context.Context, runID string, event ProgressEvent) {
	if r.Runs == nil || runID == "" {
		return
	}
	switch event.Type {
	case ProgressSaved, ProgressSkipped, ProgressFailed:
	default:
		return
	}

	rec := &nezamdoc.ItemRecord{
		RunID:      runID,
		ItemID:     event.Item.ID.String(),
		Name:       event.Item.Name,
		URL:        event.Item.URL,
		Outcome:    event.Outcome,
		OutputPath: event.Path,
		BodyHash:   event.Hash,
		RecordedAt: time.Now(),
	}
	if event.Error != nil {
		rec.Error = event.Error.Error()
	}
	if err := r.Runs.CreateItemRecord(ctx, rec); err != nil {
		r.logger().Warn("recording item outcome failed", "item", event.Item.Ref(), "err", err)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}
