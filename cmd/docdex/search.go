package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	coll, err := docdex.ParseCollection(c.Collection)
	if err != nil {
		return err
	}

	results, err := deps.Service.Search(deps.Ctx, c.Query, c.Library, coll, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	printResults(deps, results)
	return nil
}

func printResults(deps *Dependencies, results []docdex.SearchResult) {
	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%.3f] %s (%s)\n", i+1, r.Similarity, r.Metadata.Title, r.Metadata.URL)
		fmt.Fprintf(deps.Stdout, "   %s\n", truncate(r.Content, 200))
	}
}

// truncate shortens s to at most n runes. Cutting on a rune boundary keeps
// multi-byte characters intact.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
