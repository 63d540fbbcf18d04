package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdex.Fetcher.
type Fetcher struct {
	FetchFn  func(ctx context.Context, url string) (string, error)
	ExistsFn func(ctx context.Context, url string) bool
	CloseFn  func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Exists(ctx context.Context, url string) bool {
	return f.ExistsFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
