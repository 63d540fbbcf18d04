package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var (
	_ docdex.Resolver = (*Resolver)(nil)
	_ docdex.Crawler  = (*Crawler)(nil)
)

// Resolver is a mock implementation of docdex.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, library string) (*docdex.LibraryTarget, error)
}

func (r *Resolver) Resolve(ctx context.Context, library string) (*docdex.LibraryTarget, error) {
	return r.ResolveFn(ctx, library)
}

// Crawler is a mock implementation of docdex.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, baseURL, library string) (*docdex.ScrapeBundle, error)
}

func (c *Crawler) Crawl(ctx context.Context, baseURL, library string) (*docdex.ScrapeBundle, error) {
	return c.CrawlFn(ctx, baseURL, library)
}
