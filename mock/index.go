package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Index = (*Index)(nil)

// Index is a mock implementation of docdex.Index.
type Index struct {
	AddFn       func(ctx context.Context, docs []docdex.Document, collection docdex.Collection) error
	SearchFn    func(ctx context.Context, query string, collection docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error)
	SearchAllFn func(ctx context.Context, query string, n int) (map[docdex.Collection][]docdex.SearchResult, error)
	StatsFn     func(ctx context.Context) (map[docdex.Collection]docdex.CollectionStats, error)
	DeleteFn    func(ctx context.Context, ids []string, collection docdex.Collection) error
}

func (i *Index) Add(ctx context.Context, docs []docdex.Document, collection docdex.Collection) error {
	return i.AddFn(ctx, docs, collection)
}

func (i *Index) Search(ctx context.Context, query string, collection docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error) {
	return i.SearchFn(ctx, query, collection, n, filter)
}

func (i *Index) SearchAll(ctx context.Context, query string, n int) (map[docdex.Collection][]docdex.SearchResult, error) {
	return i.SearchAllFn(ctx, query, n)
}

func (i *Index) Stats(ctx context.Context) (map[docdex.Collection]docdex.CollectionStats, error) {
	return i.StatsFn(ctx)
}

func (i *Index) Delete(ctx context.Context, ids []string, collection docdex.Collection) error {
	return i.DeleteFn(ctx, ids, collection)
}
