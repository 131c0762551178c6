package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rashidq/nezamdoc"
)

// Compile-time interface verification.
var _ nezamdoc.RunService = (*RunService)(nil)

// RunService implements nezamdoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *nezamdoc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, site, manifest_path, started_at, finished_at, attempted, saved, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Site, run.ManifestPath, run.StartedAt.Format(time.RFC3339), formatNullableTime(run.FinishedAt),
		run.Attempted, run.Saved, run.Skipped, run.Failed)

	return err
}

// findRunByID retrieves a run by ID.
func (s *RunService) findRunByID(ctx context.Context, id string) (*nezamdoc.Run, error) {
	var run nezamdoc.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, site, manifest_path, started_at, finished_at, attempted, saved, skipped, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Site, &run.ManifestPath, &startedAt, &finishedAt,
		&run.Attempted, &run.Saved, &run.Skipped, &run.Failed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nezamdoc.Errorf(nezamdoc.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseNullableTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter nezamdoc.RunFilter) ([]*nezamdoc.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site, manifest_path, started_at, finished_at, attempted, saved, skipped, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Site != nil {
		query.WriteString(" AND site = ?")
		args = append(args, *filter.Site)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*nezamdoc.Run
	for rows.Next() {
		var run nezamdoc.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Site, &run.ManifestPath, &startedAt, &finishedAt,
			&run.Attempted, &run.Saved, &run.Skipped, &run.Failed); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseNullableTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// UpdateRun updates an existing run.
func (s *RunService) UpdateRun(ctx context.Context, id string, upd nezamdoc.RunUpdate) (*nezamdoc.Run, error) {
	run, err := s.findRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FinishedAt != nil {
		run.FinishedAt = *upd.FinishedAt
	}
	if upd.Attempted != nil {
		run.Attempted = *upd.Attempted
	}
	if upd.Saved != nil {
		run.Saved = *upd.Saved
	}
	if upd.Skipped != nil {
		run.Skipped = *upd.Skipped
	}
	if upd.Failed != nil {
		run.Failed = *upd.Failed
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, attempted = ?, saved = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, formatNullableTime(run.FinishedAt), run.Attempted, run.Saved, run.Skipped, run.Failed, id)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// CreateItemRecord creates a new item record.
func (s *RunService) CreateItemRecord(ctx context.Context, rec *nezamdoc.ItemRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_records (id, run_id, item_id, name, url, outcome, output_path, body_hash, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.ItemID, rec.Name, rec.URL, string(rec.Outcome), rec.OutputPath, rec.BodyHash,
		rec.Error, rec.RecordedAt.Format(time.RFC3339))

	return err
}

// FindItemRecords retrieves item records matching the filter in recording
// order. The rowid preserves insertion order even when timestamps tie.
func (s *RunService) FindItemRecords(ctx context.Context, filter nezamdoc.ItemRecordFilter) ([]*nezamdoc.ItemRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, item_id, name, url, outcome, output_path, body_hash, error, recorded_at FROM item_records WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Outcome != nil {
		query.WriteString(" AND outcome = ?")
		args = append(args, string(*filter.Outcome))
	}

	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*nezamdoc.ItemRecord
	for rows.Next() {
		var rec nezamdoc.ItemRecord
		var outcome, recordedAt string

		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.ItemID, &rec.Name, &rec.URL, &outcome,
			&rec.OutputPath, &rec.BodyHash, &rec.Error, &recordedAt); err != nil {
			return nil, err
		}

		rec.Outcome = nezamdoc.Outcome(outcome)
		if rec.RecordedAt, err = parseRFC3339(recordedAt, "recorded_at"); err != nil {
			return nil, err
		}

		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}
