// Package lru provides a caching decorator for embedders. Repeated queries
// and re-indexing of unchanged content skip the underlying strategy.
package lru

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of cached vectors.
const DefaultCacheSize = 4096

// Ensure Embedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*Embedder)(nil)

// Embedder wraps another embedder with an LRU vector cache keyed by content
// hash. Only cache misses reach the underlying strategy, batched in one
// call; results come back in input order regardless of hit pattern.
type Embedder struct {
	underlying docdex.Embedder
	cache      *lru.Cache[string, []float32]
}

// NewEmbedder wraps underlying with a cache of the given size. A size of
// zero or less uses DefaultCacheSize.
func NewEmbedder(underlying docdex.Embedder, size int) (*Embedder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "creating embedding cache: %v", err)
	}
	return &Embedder{underlying: underlying, cache: cache}, nil
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if v, ok := e.cache.Get(cacheKey(text)); ok {
			vectors[i] = v
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	embedded, err := e.underlying.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		return nil, docdex.Errorf(docdex.EINTERNAL, "embedder returned %d vectors for %d texts", len(embedded), len(missTexts))
	}

	for j, v := range embedded {
		vectors[missIdx[j]] = v
		e.cache.Add(cacheKey(missTexts[j]), v)
	}
	return vectors, nil
}

// Close closes the underlying embedder.
func (e *Embedder) Close() error {
	return e.underlying.Close()
}

func cacheKey(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
