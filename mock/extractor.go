package mock

import "github.com/fwojciec/docdex"

var (
	_ docdex.Extractor     = (*Extractor)(nil)
	_ docdex.LinkExtractor = (*LinkExtractor)(nil)
)

// Extractor is a mock implementation of docdex.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*docdex.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*docdex.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

// LinkExtractor is a mock implementation of docdex.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
