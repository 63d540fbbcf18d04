package docdex

import (
	"context"
	"time"
)

// Chunk is a bounded-size span of cleaned page text used as a retrieval unit.
type Chunk struct {
	Content string `json:"content"`
	URL     string `json:"url"`
	Library string `json:"library"`

	// ChunkID is "{library}_{ordinal}" with the ordinal restarting at 0 on
	// every page. It is not globally unique; storage keys are derived at the
	// indexing layer instead.
	ChunkID string `json:"chunk_id"`
}

// PageRecord holds the extracted content of a single documentation page.
type PageRecord struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CodeBlocks []string `json:"code_blocks"`
	Chunks     []Chunk  `json:"chunks"`
}

// ScrapeBundle is the complete snapshot of one library's scraped
// documentation. A bundle is immutable once persisted; a forced reindex
// replaces it wholesale.
type ScrapeBundle struct {
	Library   string        `json:"library"`
	BaseURL   string        `json:"base_url"`
	Pages     []*PageRecord `json:"pages"`
	ScrapedAt time.Time     `json:"scraped_at"`
}

// ChunkCount returns the total number of chunks across all pages.
func (b *ScrapeBundle) ChunkCount() int {
	var n int
	for _, p := range b.Pages {
		n += len(p.Chunks)
	}
	return n
}

// Validate returns an error if the bundle contains invalid fields.
func (b *ScrapeBundle) Validate() error {
	if b.Library == "" {
		return Errorf(EINVALID, "bundle library required")
	}
	if b.BaseURL == "" {
		return Errorf(EINVALID, "bundle base URL required")
	}
	return nil
}

// Fetcher retrieves pages over HTTP.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Non-200 responses are errors. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Exists reports whether the URL answers a HEAD-equivalent request with
	// HTTP 200. Network errors report false; they are never propagated.
	Exists(ctx context.Context, url string) bool

	// Close releases client resources.
	Close() error
}

// ExtractResult holds the cleaned content of one page.
type ExtractResult struct {
	// Title is the document title, or the page URL when absent.
	Title string

	// Text is the cleaned main content: whitespace runs collapsed and
	// non-textual noise stripped.
	Text string

	// CodeBlocks holds the contents of code-like blocks worth keeping.
	CodeBlocks []string
}

// Extractor cleans a single page of raw HTML into text and code blocks.
type Extractor interface {
	// Extract returns the cleaned content of a page.
	// Returns EINVALID when the cleaned text is too sparse to be useful.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// LinkExtractor discovers candidate links from a page.
type LinkExtractor interface {
	// ExtractLinks returns absolute URLs found in the HTML, in document
	// order. Relative URLs are resolved against baseURL. No filtering is
	// applied; scope decisions belong to the caller.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// Crawler produces a scrape bundle from a documentation root.
type Crawler interface {
	Crawl(ctx context.Context, baseURL, library string) (*ScrapeBundle, error)
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap. It checks robots.txt
	// for sitemap directives, then falls back to /sitemap.xml. Sitemap
	// indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
