package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docdex.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
	CloseFn func() error
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

func (e *Embedder) Close() error {
	if e.CloseFn != nil {
		return e.CloseFn()
	}
	return nil
}
