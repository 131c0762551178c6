package nezamdoc

import (
	"context"
	"time"
)

// Outcome is the terminal state of one item within a run.
type Outcome string

// Item outcomes. Skips are expected per-item conditions; Failed marks
// unexpected errors that were isolated so the run could continue.
const (
	OutcomeSaved            Outcome = "saved"
	OutcomeSkippedNoMatch   Outcome = "skipped_no_match"
	OutcomeSkippedNoContent Outcome = "skipped_no_content"
	OutcomeFailed           Outcome = "failed"
)

// Run represents one harvesting pass over a site.
type Run struct {
	ID           string    `json:"id"`
	Site         string    `json:"site"`
	ManifestPath string    `json:"manifestPath"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	Attempted    int       `json:"attempted"`
	Saved        int       `json:"saved"`
	Skipped      int       `json:"skipped"`
	Failed       int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Site == "" {
		return Errorf(EINVALID, "run site required")
	}
	return nil
}

// ItemRecord is the persisted outcome of a single item within a run.
type ItemRecord struct {
	ID         string    `json:"id"`
	RunID      string    `json:"runId"`
	ItemID     string    `json:"itemId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Outcome    Outcome   `json:"outcome"`
	OutputPath string    `json:"outputPath"`
	BodyHash   string    `json:"bodyHash"`
	Error      string    `json:"error"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ItemRecord) Validate() error {
	if r.RunID == "" {
		return Errorf(EINVALID, "item record run ID required")
	}
	if r.Outcome == "" {
		return Errorf(EINVALID, "item record outcome required")
	}
	return nil
}

// RunUpdate represents a set of fields to update on a run. Nil fields are
// left unchanged.
type RunUpdate struct {
	FinishedAt *time.Time `json:"finishedAt"`
	Attempted  *int       `json:"attempted"`
	Saved      *int       `json:"saved"`
	Skipped    *int       `json:"skipped"`
	Failed     *int       `json:"failed"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID   *string `json:"id"`
	Site *string `json:"site"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ItemRecordFilter represents a filter for FindItemRecords.
type ItemRecordFilter struct {
	RunID   *string  `json:"runId"`
	Outcome *Outcome `json:"outcome"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService records harvesting runs and their per-item outcomes.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// UpdateRun applies upd to the run with the given ID and returns the
	// updated run. Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// CreateItemRecord creates a new item record.
	CreateItemRecord(ctx context.Context, rec *ItemRecord) error

	// FindItemRecords retrieves item records matching the filter in
	// recording order.
	FindItemRecords(ctx context.Context, filter ItemRecordFilter) ([]*ItemRecord, error)
}
