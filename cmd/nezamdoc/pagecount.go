package main

import (
	"fmt"

	"github.com/rashidq/nezamdoc"
	"github.com/rashidq/nezamdoc/pdfpage"
)

// Run executes the pagecount command.
func (c *PagecountCmd) Run(deps *Dependencies) error {
	counts, err := deps.Counter.CountDir(deps.Ctx, c.Folder, c.Recursive)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nezamdoc.ErrorMessage(err))
		return err
	}

	if len(counts) == 0 {
		fmt.Fprintln(deps.Stderr, "No PDF files found.")
		return nil
	}

	for _, count := range counts {
		if count.Err != nil {
			fmt.Fprintf(deps.Stderr, "%s: ERROR (%v)\n", count.Path, count.Err)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: %d\n", count.Path, count.Pages)
	}
	fmt.Fprintf(deps.Stdout, "Total pages: %d\n", pdfpage.Total(counts))

	return nil
}
