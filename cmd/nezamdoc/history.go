package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
)

// Run executes the history command: recorded runs, or the item
// outcomes of one run when --run is given.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.RunID != "" {
		return c.listRecords(deps)
	}
	return c.listRuns(deps)
}

func (c *HistoryCmd) listRuns(deps *Dependencies) error {
	filter := nezamdoc.RunFilter{Limit: c.Limit}
	if c.Site != "" {
		filter.Site = &c.Site
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded yet. Use 'nezamdoc run' to harvest a site.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  saved %d/%d (skipped %d, failed %d)\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04"), run.Site,
			run.Saved, run.Attempted, run.Skipped, run.Failed)
	}

	return nil
}

func (c *HistoryCmd) listRecords(deps *Dependencies) error {
	recs, err := deps.Runs.FindItemRecords(deps.Ctx, nezamdoc.ItemRecordFilter{RunID: &c.RunID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintf(deps.Stdout, "No item outcomes recorded for run %q.\n", c.RunID)
		return nil
	}

	for _, rec := range recs {
		name := rec.Name
		if name == "" {
			name = rec.ItemID
		}
		detail := rec.OutputPath
		if rec.Error != "" {
			detail = rec.Error
		}
		fmt.Fprintf(deps.Stdout, "%-18s %s  %s\n", rec.Outcome, name, detail)
	}

	return nil
}
