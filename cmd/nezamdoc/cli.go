package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/harvest"
	"github.com/rashidq/nezamdoc/pdfpage"
	"github.com/rashidq/nezamdoc/sqlite"
	"github.com/rashidq/nezamdoc/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *yaml.Config
	DB     *sqlite.DB
	Runs   nezamdoc.RunService

	// Pipeline is the browser-backed harvesting pipeline. Only wired
	// for commands that drive a browser.
	Pipeline *Pipeline

	// Counter reports PDF page counts for the pagecount command.
	Counter *pdfpage.Counter
}

// Pipeline bundles the services assembled for harvesting one site.
type Pipeline struct {
	Site   *nezamdoc.Site
	Runner *harvest.Runner

	// DefaultManifest is the path extraction reads when no explicit
	// manifest is given: today's manifest for the site.
	DefaultManifest string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" help:"Path to a site profiles file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Run       RunCmd       `cmd:"" help:"Discover items and harvest them in one pass"`
	Discover  DiscoverCmd  `cmd:"" help:"Discover items and write a dated manifest"`
	Extract   ExtractCmd   `cmd:"" help:"Harvest documents from an existing manifest"`
	Sites     SitesCmd     `cmd:"" help:"List configured site profiles"`
	History   HistoryCmd   `cmd:"" help:"Show recorded runs and their item outcomes"`
	Pagecount PagecountCmd `cmd:"" help:"Count pages in PDF files under a folder"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Site   string `arg:"" help:"Site profile to harvest"`
	Headed bool   `help:"Show the browser window"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Site   string `arg:"" help:"Site profile to discover"`
	Headed bool   `help:"Show the browser window"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Site     string `arg:"" help:"Site profile to harvest"`
	Manifest string `short:"m" help:"Manifest path (defaults to today's manifest)" type:"path"`
	Headed   bool   `help:"Show the browser window"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Site  string `help:"Filter runs by site profile"`
	RunID string `name:"run" help:"Show item outcomes for a run ID"`
	Limit int    `default:"10" help:"Maximum runs to show"`
}

// PagecountCmd is the "pagecount" subcommand.
type PagecountCmd struct {
	Folder    string `arg:"" optional:"" default:"." help:"Folder to scan for PDF files"`
	Recursive bool   `short:"r" help:"Recurse into subfolders"`
}

// harvestProgress renders harvest progress as events arrive. Saved
// documents go to stdout, skips and failures to stderr.
func harvestProgress(deps *Dependencies) harvest.ProgressFunc {
	return func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Harvesting %d items\n", event.Total)
		case harvest.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Path)
		case harvest.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %v\n", event.Completed, event.Total, event.Item.Ref(), event.Error)
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", event.Completed, event.Total, event.Item.Ref(), event.Error)
		}
	}
}

func printResult(w io.Writer, result harvest.Result) {
	fmt.Fprintf(w, "Saved %d of %d documents (skipped %d, failed %d)\n",
		result.Saved, result.Attempted, result.Skipped, result.Failed)
}
