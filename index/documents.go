// Package index orchestrates resolution, crawling, caching, and vector
// indexing of library documentation.
package index

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
)

// DocumentID derives a stable document ID. It is a pure function of its
// inputs, so re-deriving documents from an identical bundle reproduces
// identical IDs and an add over existing IDs is a replace, not a duplicate.
func DocumentID(library, url string, ordinal int, typ docdex.DocumentType) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%s|%s|%d|%s", library, url, ordinal, typ))
	return fmt.Sprintf("%016x", sum)
}

// Route maps a document type to its home collection.
func Route(typ docdex.DocumentType) docdex.Collection {
	if typ == docdex.DocumentTypeCodeExample {
		return docdex.CollectionExamples
	}
	return docdex.CollectionDocumentation
}

// BuildDocuments derives retrieval documents from a scrape bundle: one per
// chunk and one per code block, grouped by target collection. Ordinals are
// scoped per page and per type; combined with the page URL in the ID they
// stay unique across the whole bundle.
func BuildDocuments(bundle *docdex.ScrapeBundle) map[docdex.Collection][]docdex.Document {
	docs := make(map[docdex.Collection][]docdex.Document)

	for _, page := range bundle.Pages {
		for i, chunk := range page.Chunks {
			doc := docdex.Document{
				ID:      DocumentID(bundle.Library, page.URL, i, docdex.DocumentTypeDocumentation),
				Content: chunk.Content,
				Metadata: docdex.Metadata{
					Library: bundle.Library,
					URL:     page.URL,
					Title:   page.Title,
					Type:    docdex.DocumentTypeDocumentation,
				},
			}
			coll := Route(doc.Metadata.Type)
			docs[coll] = append(docs[coll], doc)
		}

		for i, code := range page.CodeBlocks {
			doc := docdex.Document{
				ID:      DocumentID(bundle.Library, page.URL, i, docdex.DocumentTypeCodeExample),
				Content: code,
				Metadata: docdex.Metadata{
					Library: bundle.Library,
					URL:     page.URL,
					Title:   page.Title,
					Type:    docdex.DocumentTypeCodeExample,
				},
			}
			coll := Route(doc.Metadata.Type)
			docs[coll] = append(docs[coll], doc)
		}
	}

	return docs
}
