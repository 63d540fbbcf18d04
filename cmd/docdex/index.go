package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	report, err := deps.Service.ResolveAndIndex(deps.Ctx, c.Library, c.URL, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "indexed %s\n", report.Library)
	fmt.Fprintf(deps.Stdout, "  url:     %s\n", report.URL)
	fmt.Fprintf(deps.Stdout, "  pages:   %d\n", report.PagesCount)
	fmt.Fprintf(deps.Stdout, "  chunks:  %d\n", report.ChunksCount)
	fmt.Fprintf(deps.Stdout, "  updated: %s\n", report.LastUpdated.Format("2006-01-02 15:04:05"))

	return nil
}
