package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	path, count, err := deps.Pipeline.Runner.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d items\n", count)
	fmt.Fprintf(deps.Stdout, "Manifest written to %s\n", path)
	return nil
}
