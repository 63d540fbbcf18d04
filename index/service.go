package index

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/docdex"
	"golang.org/x/sync/singleflight"
)

// DefaultSearchLimit is the result count used when the caller does not ask
// for a specific one.
const DefaultSearchLimit = 5

// Service ties discovery, crawling, caching, and the vector index together.
// Concurrent indexing requests for the same library collapse into one
// in-flight operation; all callers get its result.
type Service struct {
	Resolver docdex.Resolver
	Crawler  docdex.Crawler
	Cache    docdex.BundleCache
	Index    docdex.Index
	Logger   *slog.Logger

	group singleflight.Group
}

// ResolveAndIndex makes a library searchable: resolve its documentation
// root, crawl it, persist the bundle, and index the derived documents. A
// fresh cached bundle short-circuits the crawl unless force is set; the
// index is still rebuilt from it so a cold index heals from cache.
func (s *Service) ResolveAndIndex(ctx context.Context, library, docURL string, force bool) (*docdex.IndexReport, error) {
	if strings.TrimSpace(library) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "library name required")
	}

	key := strings.ToLower(strings.TrimSpace(library))
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolveAndIndex(ctx, library, docURL, force)
	})
	if err != nil {
		return nil, err
	}
	return v.(*docdex.IndexReport), nil
}

func (s *Service) resolveAndIndex(ctx context.Context, library, docURL string, force bool) (*docdex.IndexReport, error) {
	if !force {
		bundle, err := s.Cache.Load(ctx, library)
		if err == nil {
			s.log("serving library from cache", "library", library, "pages", len(bundle.Pages))
			if err := s.indexBundle(ctx, bundle); err != nil {
				return nil, err
			}
			return report(bundle), nil
		}
		if docdex.ErrorCode(err) != docdex.ENOTFOUND {
			return nil, err
		}
	}

	target := &docdex.LibraryTarget{Name: library, URL: docURL, Method: docdex.DiscoveryManual}
	if docURL == "" {
		resolved, err := s.Resolver.Resolve(ctx, library)
		if err != nil {
			return nil, err
		}
		target = resolved
	}
	s.log("resolved documentation root", "library", library, "url", target.URL, "method", target.Method)

	bundle, err := s.Crawler.Crawl(ctx, target.URL, library)
	if err != nil {
		return nil, err
	}
	if len(bundle.Pages) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no pages scraped from %s", target.URL)
	}

	if err := s.Cache.Save(ctx, bundle); err != nil {
		return nil, err
	}
	if err := s.indexBundle(ctx, bundle); err != nil {
		return nil, err
	}

	s.log("indexed library", "library", library, "pages", len(bundle.Pages), "chunks", bundle.ChunkCount())
	return report(bundle), nil
}

// indexBundle replaces a library's documents in the index. Deterministic IDs
// turn the delete-then-add into an idempotent update.
func (s *Service) indexBundle(ctx context.Context, bundle *docdex.ScrapeBundle) error {
	for coll, docs := range BuildDocuments(bundle) {
		ids := make([]string, len(docs))
		for i, doc := range docs {
			ids[i] = doc.ID
		}
		if err := s.Index.Delete(ctx, ids, coll); err != nil {
			return err
		}
		if err := s.Index.Add(ctx, docs, coll); err != nil {
			return err
		}
	}
	return nil
}

// Search queries one collection. When a library hint is given and nothing
// matches, the service indexes that library once and retries the search
// once; a library whose documentation cannot be found yields an empty
// result, not an error.
func (s *Service) Search(ctx context.Context, query, library string, coll docdex.Collection, n int) ([]docdex.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "query required")
	}
	if n <= 0 {
		n = DefaultSearchLimit
	}

	var filter *docdex.SearchFilter
	if library != "" {
		filter = &docdex.SearchFilter{Library: &library}
	}

	results, err := s.Index.Search(ctx, query, coll, n, filter)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 || library == "" {
		return results, nil
	}

	s.log("no results, indexing on demand", "library", library)
	if _, err := s.ResolveAndIndex(ctx, library, "", false); err != nil {
		if docdex.ErrorCode(err) == docdex.ENOTFOUND {
			return []docdex.SearchResult{}, nil
		}
		return nil, err
	}
	return s.Index.Search(ctx, query, coll, n, filter)
}

// MultiSearch fans a query across every collection.
func (s *Service) MultiSearch(ctx context.Context, query string, n int) (map[docdex.Collection][]docdex.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "query required")
	}
	if n <= 0 {
		n = DefaultSearchLimit
	}
	return s.Index.SearchAll(ctx, query, n)
}

// Stats reports per-collection document counts.
func (s *Service) Stats(ctx context.Context) (map[docdex.Collection]docdex.CollectionStats, error) {
	return s.Index.Stats(ctx)
}

func report(bundle *docdex.ScrapeBundle) *docdex.IndexReport {
	return &docdex.IndexReport{
		Library:     bundle.Library,
		URL:         bundle.BaseURL,
		PagesCount:  len(bundle.Pages),
		ChunksCount: bundle.ChunkCount(),
		LastUpdated: bundle.ScrapedAt,
	}
}

func (s *Service) log(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, args...)
	}
}
