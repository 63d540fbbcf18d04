// Package crawl provides documentation discovery and bounded breadth-first
// crawling. It coordinates URL resolution, fetching, extraction, and
// chunking into scrape bundles.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docdex"
)

// Crawl bounds.
const (
	// DefaultMaxPages limits a single crawl to prevent unbounded scraping.
	DefaultMaxPages = 50

	// DefaultMaxLinksPerPage caps how many newly discovered links one page
	// may contribute to the frontier.
	DefaultMaxLinksPerPage = 10

	// DefaultCrawlTimeout bounds the duration of a whole crawl.
	DefaultCrawlTimeout = 10 * time.Minute
)

// docTokens are the path fragments that mark a URL as documentation-like.
var docTokens = []string{
	"doc", "guide", "tutorial", "api", "reference",
	"manual", "help", "wiki", "learn", "getting-started",
}

// Ensure Engine implements docdex.Crawler at compile time.
var _ docdex.Crawler = (*Engine)(nil)

// Engine performs a bounded breadth-first crawl from a documentation root.
// Crawling is sequential: one fetch in flight at a time, which keeps dedup
// and ordering semantics trivial and the load on the target site low.
type Engine struct {
	Fetcher   docdex.Fetcher
	Extractor docdex.Extractor
	Links     docdex.LinkExtractor
	Logger    *slog.Logger

	// Limiter, when set, throttles fetches per domain.
	Limiter docdex.DomainLimiter

	// Sitemaps, when set, pre-seeds the frontier with sitemap URLs that
	// pass the same scope filter as discovered links.
	Sitemaps docdex.SitemapService

	// MaxPages bounds the number of successfully extracted pages.
	// Defaults to DefaultMaxPages.
	MaxPages int

	// ChunkSize is the chunker flush threshold in characters.
	// Defaults to docdex.DefaultChunkSize.
	ChunkSize int

	// MaxLinksPerPage caps frontier contributions per page.
	// Defaults to DefaultMaxLinksPerPage.
	MaxLinksPerPage int

	// Timeout bounds the whole crawl. Defaults to DefaultCrawlTimeout.
	Timeout time.Duration

	// RetryDelays configures fetch retry backoff. Defaults to
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Crawl walks the site breadth-first from baseURL and returns the scraped
// bundle. A single page's fetch or parse failure is logged and skipped; it
// never aborts the crawl. The context is checked between page fetches so a
// canceled crawl aborts promptly.
func (e *Engine) Crawl(ctx context.Context, baseURL, library string) (*docdex.ScrapeBundle, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultCrawlTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxPages := e.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	maxLinks := e.MaxLinksPerPage
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinksPerPage
	}

	frontier := NewFrontier()
	frontier.Push(baseURL)
	e.seedFromSitemap(ctx, frontier, base, baseURL)

	var pages []*docdex.PageRecord

	for len(pages) < maxPages {
		current, ok := frontier.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, html, err := e.scrapePage(ctx, current, library)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.log("skipping page", "url", current, "err", err)
			continue
		}
		pages = append(pages, page)

		if len(pages) == maxPages {
			break
		}

		e.discoverLinks(html, current, frontier, base, maxLinks)
	}

	return &docdex.ScrapeBundle{
		Library:   library,
		BaseURL:   baseURL,
		Pages:     pages,
		ScrapedAt: time.Now().UTC(),
	}, nil
}

// scrapePage fetches and extracts a single page, then chunks its content.
// The raw HTML is returned alongside the record so link discovery can reuse
// the same fetched document.
func (e *Engine) scrapePage(ctx context.Context, pageURL, library string) (*docdex.PageRecord, string, error) {
	if e.Limiter != nil {
		if u, err := url.Parse(pageURL); err == nil {
			if err := e.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, "", err
			}
		}
	}

	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := fetchWithRetry(ctx, pageURL, e.Fetcher.Fetch, e.Logger, delays)
	if err != nil {
		return nil, "", err
	}

	res, err := e.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, "", err
	}

	page := &docdex.PageRecord{
		URL:        pageURL,
		Title:      res.Title,
		Content:    res.Text,
		CodeBlocks: res.CodeBlocks,
		Chunks:     docdex.SplitChunks(res.Text, pageURL, library, e.ChunkSize),
	}
	return page, html, nil
}

// discoverLinks pulls candidate links out of a fetched page and enqueues
// those in scope: same network authority as the base URL and a
// documentation-indicative path, at most maxLinks new entries per page.
func (e *Engine) discoverLinks(html, pageURL string, frontier *Frontier, base *url.URL, maxLinks int) {
	if e.Links == nil {
		return
	}

	links, err := e.Links.ExtractLinks(html, pageURL)
	if err != nil {
		e.log("link extraction failed", "url", pageURL, "err", err)
		return
	}

	added := 0
	for _, link := range links {
		if added >= maxLinks {
			break
		}
		if !inScope(link, base) {
			continue
		}
		if frontier.Push(link) {
			added++
		}
	}
}

// seedFromSitemap enqueues sitemap URLs behind the base seed, applying the
// same scope filter as link discovery. Sitemap failures are logged and
// ignored; the base seed alone is always enough to crawl.
func (e *Engine) seedFromSitemap(ctx context.Context, frontier *Frontier, base *url.URL, baseURL string) {
	if e.Sitemaps == nil {
		return
	}

	urls, err := e.Sitemaps.DiscoverURLs(ctx, baseURL)
	if err != nil {
		e.log("sitemap discovery failed", "url", baseURL, "err", err)
		return
	}
	for _, u := range urls {
		if inScope(u, base) {
			frontier.Push(u)
		}
	}
}

// inScope reports whether a link shares the base URL's network authority
// and has a documentation-indicative path.
func inScope(link string, base *url.URL) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Host != base.Host {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, token := range docTokens {
		if strings.Contains(path, token) {
			return true
		}
	}
	return false
}

func (e *Engine) log(msg string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warn(msg, args...)
	}
}
