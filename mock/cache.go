package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.BundleCache = (*BundleCache)(nil)

// BundleCache is a mock implementation of docdex.BundleCache.
type BundleCache struct {
	LoadFn func(ctx context.Context, library string) (*docdex.ScrapeBundle, error)
	SaveFn func(ctx context.Context, bundle *docdex.ScrapeBundle) error
}

func (c *BundleCache) Load(ctx context.Context, library string) (*docdex.ScrapeBundle, error) {
	return c.LoadFn(ctx, library)
}

func (c *BundleCache) Save(ctx context.Context, bundle *docdex.ScrapeBundle) error {
	return c.SaveFn(ctx, bundle)
}
