package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
)

// Run executes the run command: discovery, manifest, then extraction.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Pipeline.Runner.Run(deps.Ctx, harvestProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Manifest: %s\n", summary.ManifestPath)
	printResult(deps.Stdout, summary.Result)
	return nil
}
