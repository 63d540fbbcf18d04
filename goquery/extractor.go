// Package goquery provides selector-based content extraction from
// documentation pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// minContentLength is the minimum cleaned-text length for a page to be
// worth indexing. Sparser pages are rejected.
const minContentLength = 100

// minCodeBlockLength filters out trivial inline code fragments.
const minCodeBlockLength = 10

// contentSelectors is the ordered list of structural selectors tried when
// choosing the content root. First match wins; the body is the fallback.
var contentSelectors = []string{
	"main",
	".content",
	".documentation",
	".docs",
	".main-content",
	"#content",
	"article",
	".page-content",
}

// Ensure Extractor implements both extraction interfaces at compile time.
var (
	_ docdex.Extractor     = (*Extractor)(nil)
	_ docdex.LinkExtractor = (*Extractor)(nil)
)

// Extractor cleans raw HTML into text and code blocks using structural
// selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the cleaned content of a page.
// Returns EINVALID when the cleaned text is under the minimum length, and
// ENOTFOUND when the document has no content root at all.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*docdex.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "empty HTML input for %s", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "parsing HTML for %s: %v", pageURL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = pageURL
	}

	// Script and style contents would otherwise leak into the text.
	doc.Find("script, style").Remove()

	content := contentRoot(doc)
	if content == nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no content root in %s", pageURL)
	}

	text := docdex.CleanText(content.Text())
	if len(text) < minContentLength {
		return nil, docdex.Errorf(docdex.EINVALID, "content too sparse (%d chars) at %s", len(text), pageURL)
	}

	var codeBlocks []string
	content.Find("code, pre").Each(func(_ int, s *goquery.Selection) {
		code := strings.TrimSpace(s.Text())
		if len(code) > minCodeBlockLength {
			codeBlocks = append(codeBlocks, code)
		}
	})

	return &docdex.ExtractResult{
		Title:      title,
		Text:       text,
		CodeBlocks: codeBlocks,
	}, nil
}

// contentRoot selects the main content region by trying the ordered
// selector list, falling back to the document body.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return nil
}
