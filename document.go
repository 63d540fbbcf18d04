package docdex

import (
	"context"
	"time"
)

// DocumentType categorizes indexed content.
type DocumentType string

// Document types derived from a scrape bundle.
const (
	DocumentTypeDocumentation DocumentType = "documentation"
	DocumentTypeCodeExample   DocumentType = "code_example"
)

// Collection identifies one of the four fixed partitions of the vector
// index. The set is closed; there is no way to create additional
// collections at runtime.
type Collection int

// The fixed collection set, created at startup.
const (
	CollectionDocumentation Collection = iota
	CollectionAPI
	CollectionExamples
	CollectionTutorials
)

// collectionNames maps collections to their wire names.
var collectionNames = map[Collection]string{
	CollectionDocumentation: "documentation",
	CollectionAPI:           "api",
	CollectionExamples:      "examples",
	CollectionTutorials:     "tutorials",
}

// String returns the collection's wire name.
func (c Collection) String() string {
	if name, ok := collectionNames[c]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether c is a member of the fixed collection set.
func (c Collection) Valid() bool {
	_, ok := collectionNames[c]
	return ok
}

// Collections returns all collections in a stable order.
func Collections() []Collection {
	return []Collection{
		CollectionDocumentation,
		CollectionAPI,
		CollectionExamples,
		CollectionTutorials,
	}
}

// ParseCollection maps a wire name to a Collection.
// Returns EINVALID for names outside the fixed set.
func ParseCollection(name string) (Collection, error) {
	for c, n := range collectionNames {
		if n == name {
			return c, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown collection %q", name)
}

// Metadata describes the provenance of an indexed document.
type Metadata struct {
	Library  string       `json:"library"`
	URL      string       `json:"url"`
	Title    string       `json:"title"`
	Type     DocumentType `json:"type"`
	Language string       `json:"language,omitempty"`
}

// Document is a derived retrieval unit ready for indexing. Documents are
// never hand-authored; the ID is a pure function of (library, url, ordinal,
// type) so that re-deriving from identical input reproduces identical IDs.
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "document content required")
	}
	if d.Metadata.Library == "" {
		return Errorf(EINVALID, "document library required")
	}
	return nil
}

// SearchResult represents a single search match.
type SearchResult struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Metadata   Metadata `json:"metadata"`
	Similarity float32  `json:"similarity"`
}

// SearchFilter narrows a search by document metadata.
type SearchFilter struct {
	Library *string       `json:"library,omitempty"`
	Type    *DocumentType `json:"type,omitempty"`
}

// Match reports whether the metadata passes the filter.
// A nil filter passes everything.
func (f *SearchFilter) Match(m Metadata) bool {
	if f == nil {
		return true
	}
	if f.Library != nil && m.Library != *f.Library {
		return false
	}
	if f.Type != nil && m.Type != *f.Type {
		return false
	}
	return true
}

// CollectionStats reports the state of one collection. Exactly one of
// DocumentCount or Error is meaningful; a failed collection carries its
// error message without affecting the others.
type CollectionStats struct {
	DocumentCount int    `json:"document_count"`
	Error         string `json:"error,omitempty"`
}

// Index stores document embeddings in named collections and searches them
// by cosine similarity.
type Index interface {
	// Add embeds each document's content and stores the
	// (embedding, content, metadata, id) tuples in the collection.
	// Embedding failures propagate; a multi-document add is not atomic as a
	// whole, but IDs are deterministic so re-running it is safe.
	Add(ctx context.Context, docs []Document, collection Collection) error

	// Search returns up to n results ordered by ascending cosine distance.
	// Similarity is reported as 1 - cosineDistance. Ordering among ties is
	// implementation-defined and not stable across runs. Searching an empty
	// collection returns an empty slice, never an error.
	Search(ctx context.Context, query string, collection Collection, n int, filter *SearchFilter) ([]SearchResult, error)

	// SearchAll fans the query across every collection. The result always
	// contains one entry per collection, empty when nothing matched.
	SearchAll(ctx context.Context, query string, n int) (map[Collection][]SearchResult, error)

	// Stats returns a per-collection document count. A failure on one
	// collection becomes an error entry for that collection only.
	Stats(ctx context.Context) (map[Collection]CollectionStats, error)

	// Delete removes documents by ID. IDs that do not exist are ignored.
	Delete(ctx context.Context, ids []string, collection Collection) error
}

// Embedder converts text into fixed-size vectors. The strategy (local model
// or remote API) is selected at construction time, never per call, and a
// strategy's failure surfaces as a provider error with no silent fallback.
type Embedder interface {
	// Embed returns one vector per input, order-preserving.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Close releases the strategy's resources.
	Close() error
}

// IndexReport summarizes the outcome of resolving and indexing a library.
type IndexReport struct {
	Library     string    `json:"library"`
	URL         string    `json:"url"`
	PagesCount  int       `json:"pages_count"`
	ChunksCount int       `json:"chunks_count"`
	LastUpdated time.Time `json:"last_updated"`
}
