package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
)

// Run executes the extract command against an existing manifest.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	path := c.Manifest
	if path == "" {
		path = deps.Pipeline.DefaultManifest
	}

	summary, err := deps.Pipeline.Runner.Extract(deps.Ctx, path, harvestProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	printResult(deps.Stdout, summary.Result)
	return nil
}
