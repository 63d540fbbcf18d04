package lru_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/lru"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder embeds each text as a single-element vector and records
// which texts reached it.
func countingEmbedder(calls *[][]string) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			*calls = append(*calls, texts)
			out := make([][]float32, len(texts))
			for i, t := range texts {
				out[i] = []float32{float32(len(t))}
			}
			return out, nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestEmbedder_caches_repeated_texts(t *testing.T) {
	t.Parallel()

	var calls [][]string
	e, err := lru.NewEmbedder(countingEmbedder(&calls), 10)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := e.Embed(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)
	second, err := e.Embed(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, calls, 1, "the second call must be served from cache")
}

func TestEmbedder_batches_only_the_misses(t *testing.T) {
	t.Parallel()

	var calls [][]string
	e, err := lru.NewEmbedder(countingEmbedder(&calls), 10)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = e.Embed(ctx, []string{"alpha"})
	require.NoError(t, err)

	vectors, err := e.Embed(ctx, []string{"beta", "alpha", "gamma"})
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, []string{"beta", "gamma"}, calls[1], "cached texts stay out of the batch")

	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{4}, vectors[0])
	assert.Equal(t, []float32{5}, vectors[1])
	assert.Equal(t, []float32{5}, vectors[2])
}

func TestEmbedder_propagates_underlying_failures(t *testing.T) {
	t.Parallel()

	failing := &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, docdex.Errorf(docdex.EUNAVAILABLE, "provider unreachable")
		},
	}
	e, err := lru.NewEmbedder(failing, 10)
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), []string{"alpha"})
	assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
}

func TestEmbedder_Close_closes_the_underlying_embedder(t *testing.T) {
	t.Parallel()

	var closed bool
	underlying := &mock.Embedder{CloseFn: func() error { closed = true; return nil }}
	e, err := lru.NewEmbedder(underlying, 10)
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.True(t, closed)
}
