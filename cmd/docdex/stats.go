package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Service.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	for _, coll := range docdex.Collections() {
		s := stats[coll]
		if s.Error != "" {
			fmt.Fprintf(deps.Stdout, "%-15s error: %s\n", coll, s.Error)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%-15s %d documents\n", coll, s.DocumentCount)
	}

	return nil
}
