package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docdex"
	main "github.com/fwojciec/docdex/cmd/docdex"
	"github.com/fwojciec/docdex/index"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a line per collection", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			StatsFn: func(_ context.Context) (map[docdex.Collection]docdex.CollectionStats, error) {
				return map[docdex.Collection]docdex.CollectionStats{
					docdex.CollectionDocumentation: {DocumentCount: 42},
					docdex.CollectionAPI:           {},
					docdex.CollectionExamples:      {DocumentCount: 7},
					docdex.CollectionTutorials:     {Error: "collection unavailable"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Service: &index.Service{Index: idx},
		}

		err := (&main.StatsCmd{}).Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "documentation")
		assert.Contains(t, output, "42 documents")
		assert.Contains(t, output, "7 documents")
		assert.Contains(t, output, "error: collection unavailable")
	})

	t.Run("reports index errors", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			StatsFn: func(_ context.Context) (map[docdex.Collection]docdex.CollectionStats, error) {
				return nil, docdex.Errorf(docdex.EINTERNAL, "index offline")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Service: &index.Service{Index: idx},
		}

		err := (&main.StatsCmd{}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "index offline")
	})
}
