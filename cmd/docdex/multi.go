package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the multi command.
func (c *MultiCmd) Run(deps *Dependencies) error {
	results, err := deps.Service.MultiSearch(deps.Ctx, c.Query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	for _, coll := range docdex.Collections() {
		fmt.Fprintf(deps.Stdout, "%s:\n", coll)
		matches := results[coll]
		if len(matches) == 0 {
			fmt.Fprintln(deps.Stdout, "  (no results)")
			continue
		}
		for i, r := range matches {
			fmt.Fprintf(deps.Stdout, "  %d. [%.3f] %s (%s)\n", i+1, r.Similarity, r.Metadata.Title, r.Metadata.URL)
		}
	}

	return nil
}
