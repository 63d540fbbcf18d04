// Package readability provides an alternative content extractor built on
// go-readability's boilerplate-removal heuristics. It trades the selector
// list's predictability for better results on pages with unusual markup.
package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
	readability "github.com/go-shiori/go-readability"
)

// Thresholds shared with the selector-based extractor.
const (
	minContentLength   = 100
	minCodeBlockLength = 10
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the cleaned main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docdex.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input for %s", pageURL)
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "readability extraction for %s: %v", pageURL, err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL
	}

	text := docdex.CleanText(article.TextContent)
	if len(text) < minContentLength {
		return nil, docdex.Errorf(docdex.EINVALID, "content too sparse (%d chars) at %s", len(text), pageURL)
	}

	return &docdex.ExtractResult{
		Title:      title,
		Text:       text,
		CodeBlocks: codeBlocks(article.Content),
	}, nil
}

// codeBlocks pulls code-like block contents out of the extracted article
// HTML. Readability preserves pre/code elements in its content output.
func codeBlocks(contentHTML string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil
	}

	var blocks []string
	doc.Find("code, pre").Each(func(_ int, s *goquery.Selection) {
		code := strings.TrimSpace(s.Text())
		if len(code) > minCodeBlockLength {
			blocks = append(blocks, code)
		}
	})
	return blocks
}
