package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestRun(t *testing.T, svc *sqlite.RunService, site string) *nezamdoc.Run {
	t.Helper()
	run := &nezamdoc.Run{
		Site:         site,
		ManifestPath: site + "_Items.03.05.2024.json",
	}
	require.NoError(t, svc.CreateRun(context.Background(), run))
	return run
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID and start time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &nezamdoc.Run{Site: "nezams", ManifestPath: "Nezams_IDs.03.05.2024.json"}

		err := svc.CreateRun(ctx, run)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.False(t, run.StartedAt.IsZero(), "StartedAt should be set")
		assert.True(t, run.FinishedAt.IsZero(), "FinishedAt should stay unset")
	})

	t.Run("keeps a caller-provided start time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		started := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
		run := &nezamdoc.Run{Site: "nezams", StartedAt: started}

		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRuns(ctx, nezamdoc.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, found[0].StartedAt.Equal(started))
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &nezamdoc.Run{} // missing site

		err := svc.CreateRun(ctx, run)
		require.Error(t, err)
		assert.Equal(t, nezamdoc.EINVALID, nezamdoc.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns all runs with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		createTestRun(t, svc, "nezams")
		createTestRun(t, svc, "gosi")
		createTestRun(t, svc, "nezams")

		runs, err := svc.FindRuns(context.Background(), nezamdoc.RunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 3)
	})

	t.Run("filters by site", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		createTestRun(t, svc, "nezams")
		createTestRun(t, svc, "gosi")

		site := "gosi"
		runs, err := svc.FindRuns(context.Background(), nezamdoc.RunFilter{Site: &site})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "gosi", runs[0].Site)
	})

	t.Run("filters by id", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		run := createTestRun(t, svc, "nezams")
		createTestRun(t, svc, "nezams")

		runs, err := svc.FindRuns(context.Background(), nezamdoc.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
		assert.Equal(t, run.ManifestPath, runs[0].ManifestPath)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		for i := 0; i < 5; i++ {
			createTestRun(t, svc, "nezams")
		}

		runs, err := svc.FindRuns(context.Background(), nezamdoc.RunFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})
}

func TestRunService_UpdateRun(t *testing.T) {
	t.Parallel()

	t.Run("records the run summary", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		finished := time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)
		attempted, saved, skipped, failed := 10, 7, 2, 1
		updated, err := svc.UpdateRun(ctx, run.ID, nezamdoc.RunUpdate{
			FinishedAt: &finished,
			Attempted:  &attempted,
			Saved:      &saved,
			Skipped:    &skipped,
			Failed:     &failed,
		})
		require.NoError(t, err)

		assert.True(t, updated.FinishedAt.Equal(finished))
		assert.Equal(t, 10, updated.Attempted)
		assert.Equal(t, 7, updated.Saved)
		assert.Equal(t, 2, updated.Skipped)
		assert.Equal(t, 1, updated.Failed)

		// The update persisted, not just mutated the returned struct.
		found, err := svc.FindRuns(ctx, nezamdoc.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 7, found[0].Saved)
		assert.True(t, found[0].FinishedAt.Equal(finished))
	})

	t.Run("leaves nil fields unchanged", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		saved := 3
		updated, err := svc.UpdateRun(ctx, run.ID, nezamdoc.RunUpdate{Saved: &saved})
		require.NoError(t, err)

		assert.Equal(t, 3, updated.Saved)
		assert.Equal(t, 0, updated.Attempted)
		assert.True(t, updated.FinishedAt.IsZero())
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		saved := 1
		_, err := svc.UpdateRun(context.Background(), "nonexistent-id", nezamdoc.RunUpdate{Saved: &saved})
		require.Error(t, err)
		assert.Equal(t, nezamdoc.ENOTFOUND, nezamdoc.ErrorCode(err))
	})
}

func TestRunService_CreateItemRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		rec := &nezamdoc.ItemRecord{
			RunID:      run.ID,
			ItemID:     "31554",
			Name:       "نظام العمل",
			URL:        "https://laws.example.sa/?p=31554",
			Outcome:    nezamdoc.OutcomeSaved,
			OutputPath: "Nezams_Docs/نظام العمل.docx",
			BodyHash:   "9c5ed3b0a2d87a4f",
		}

		err := svc.CreateItemRecord(ctx, rec)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.RecordedAt.IsZero())
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		rec := &nezamdoc.ItemRecord{} // missing run ID and outcome

		err := svc.CreateItemRecord(context.Background(), rec)
		require.Error(t, err)
		assert.Equal(t, nezamdoc.EINVALID, nezamdoc.ErrorCode(err))
	})

	t.Run("rejects a record for an unknown run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		rec := &nezamdoc.ItemRecord{
			RunID:   "nonexistent-run",
			Outcome: nezamdoc.OutcomeSaved,
		}

		err := svc.CreateItemRecord(context.Background(), rec)
		require.Error(t, err)
	})
}

func TestRunService_FindItemRecords(t *testing.T) {
	t.Parallel()

	t.Run("returns records in recording order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		outcomes := []nezamdoc.Outcome{
			nezamdoc.OutcomeSaved,
			nezamdoc.OutcomeSkippedNoMatch,
			nezamdoc.OutcomeFailed,
		}
		for i, outcome := range outcomes {
			rec := &nezamdoc.ItemRecord{
				RunID:   run.ID,
				ItemID:  string(rune('1' + i)),
				Outcome: outcome,
			}
			require.NoError(t, svc.CreateItemRecord(ctx, rec))
		}

		recs, err := svc.FindItemRecords(ctx, nezamdoc.ItemRecordFilter{RunID: &run.ID})
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, nezamdoc.OutcomeSaved, recs[0].Outcome)
		assert.Equal(t, nezamdoc.OutcomeSkippedNoMatch, recs[1].Outcome)
		assert.Equal(t, nezamdoc.OutcomeFailed, recs[2].Outcome)
	})

	t.Run("filters by run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run1 := createTestRun(t, svc, "nezams")
		run2 := createTestRun(t, svc, "gosi")

		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run1.ID, Outcome: nezamdoc.OutcomeSaved}))
		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run2.ID, Outcome: nezamdoc.OutcomeFailed}))

		recs, err := svc.FindItemRecords(ctx, nezamdoc.ItemRecordFilter{RunID: &run2.ID})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, run2.ID, recs[0].RunID)
	})

	t.Run("filters by outcome", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run.ID, Outcome: nezamdoc.OutcomeSaved}))
		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run.ID, Outcome: nezamdoc.OutcomeSkippedNoContent}))
		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run.ID, Outcome: nezamdoc.OutcomeSaved}))

		outcome := nezamdoc.OutcomeSaved
		recs, err := svc.FindItemRecords(ctx, nezamdoc.ItemRecordFilter{Outcome: &outcome})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("round-trips record fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")

		rec := &nezamdoc.ItemRecord{
			RunID:      run.ID,
			ItemID:     "31554",
			Name:       "نظام العمل",
			URL:        "https://laws.example.sa/?p=31554",
			Outcome:    nezamdoc.OutcomeFailed,
			OutputPath: "Nezams_Docs/نظام العمل.docx",
			BodyHash:   "9c5ed3b0a2d87a4f",
			Error:      "browser crashed",
		}
		require.NoError(t, svc.CreateItemRecord(ctx, rec))

		recs, err := svc.FindItemRecords(ctx, nezamdoc.ItemRecordFilter{RunID: &run.ID})
		require.NoError(t, err)
		require.Len(t, recs, 1)

		found := recs[0]
		assert.Equal(t, rec.ID, found.ID)
		assert.Equal(t, "31554", found.ItemID)
		assert.Equal(t, "نظام العمل", found.Name)
		assert.Equal(t, "https://laws.example.sa/?p=31554", found.URL)
		assert.Equal(t, nezamdoc.OutcomeFailed, found.Outcome)
		assert.Equal(t, "Nezams_Docs/نظام العمل.docx", found.OutputPath)
		assert.Equal(t, "9c5ed3b0a2d87a4f", found.BodyHash)
		assert.Equal(t, "browser crashed", found.Error)
		assert.False(t, found.RecordedAt.IsZero())
	})

	t.Run("deleting a run cascades to its records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := createTestRun(t, svc, "nezams")
		require.NoError(t, svc.CreateItemRecord(ctx, &nezamdoc.ItemRecord{RunID: run.ID, Outcome: nezamdoc.OutcomeSaved}))

		_, err := db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", run.ID)
		require.NoError(t, err)

		recs, err := svc.FindItemRecords(ctx, nezamdoc.ItemRecordFilter{RunID: &run.ID})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
