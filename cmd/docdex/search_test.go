package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/docdex"
	main "github.com/fwojciec/docdex/cmd/docdex"
	"github.com/fwojciec/docdex/index"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints ranked results", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			SearchFn: func(_ context.Context, query string, coll docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error) {
				assert.Equal(t, docdex.CollectionExamples, coll)
				return []docdex.SearchResult{
					{
						ID:         "d1",
						Content:    "widget.New() creates a widget",
						Similarity: 0.92,
						Metadata: docdex.Metadata{
							Library: "widgetlib",
							URL:     "https://example.com/docs",
							Title:   "Overview",
						},
					},
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

		cmd := &main.SearchCmd{Query: "create widget", Collection: "examples", Limit: 5}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "0.920")
		assert.Contains(t, output, "Overview")
		assert.Contains(t, output, "https://example.com/docs")
		assert.Contains(t, output, "widget.New()")
	})

	t.Run("truncates long content on a rune boundary", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			SearchFn: func(_ context.Context, query string, coll docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error) {
				return []docdex.SearchResult{
					{
						ID:         "d1",
						Content:    strings.Repeat("日本語版", 80),
						Similarity: 0.8,
						Metadata:   docdex.Metadata{Library: "widgetlib", URL: "https://example.com/docs", Title: "概要"},
					},
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

		cmd := &main.SearchCmd{Query: "anything", Collection: "documentation", Limit: 5}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "...")
		assert.True(t, utf8.ValidString(output), "truncation must not split a multi-byte character")
	})

	t.Run("prints a message when nothing matches", func(t *testing.T) {
		t.Parallel()

		idx := &mock.Index{
			SearchFn: func(_ context.Context, query string, coll docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error) {
				return []docdex.SearchResult{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Service: &index.Service{Index: idx},
		}

		cmd := &main.SearchCmd{Query: "anything", Collection: "documentation", Limit: 5}
		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No results found.")
	})

	t.Run("rejects unknown collections", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Service: &index.Service{},
		}

		cmd := &main.SearchCmd{Query: "anything", Collection: "poetry", Limit: 5}
		err := cmd.Run(deps)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
