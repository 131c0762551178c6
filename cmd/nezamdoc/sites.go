package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	names := deps.Config.Names()
	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured.")
		return nil
	}

	for _, name := range names {
		site, err := deps.Config.Site(name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", name, site.Mode, site.HomeURL)
	}

	return nil
}
