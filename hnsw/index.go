// Package hnsw implements the vector index on top of the coder/hnsw graph.
// Collections are kept fully in memory; each holds its own graph plus the
// document payloads keyed by document ID.
package hnsw

import (
	"context"
	"math"
	"sync"

	"github.com/coder/hnsw"
	"github.com/fwojciec/docdex"
	"golang.org/x/sync/errgroup"
)

// filterOversample widens the candidate set when a metadata filter is in
// play, so post-filtering still yields up to n results.
const filterOversample = 5

// Ensure Index implements docdex.Index at compile time.
var _ docdex.Index = (*Index)(nil)

// record holds the stored payload for one document.
type record struct {
	doc    docdex.Document
	vector []float32
	key    uint64
}

// collection is the per-collection state: one graph plus ID bookkeeping.
// Removal is lazy: the graph node stays behind but loses its key mapping, so
// it can never surface in results. This sidesteps graph repair on delete.
type collection struct {
	graph   *hnsw.Graph[uint64]
	records map[string]*record
	keys    map[uint64]string
	nextKey uint64
	dims    int
}

func newCollection() *collection {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	return &collection{
		graph:   graph,
		records: make(map[string]*record),
		keys:    make(map[uint64]string),
	}
}

// Index stores document embeddings in the four fixed collections and
// searches them by cosine similarity.
type Index struct {
	embedder docdex.Embedder

	mu          sync.RWMutex
	collections map[docdex.Collection]*collection
}

// NewIndex creates an Index with all collections ready. The embedder turns
// document content and queries into vectors.
func NewIndex(embedder docdex.Embedder) *Index {
	collections := make(map[docdex.Collection]*collection, len(docdex.Collections()))
	for _, c := range docdex.Collections() {
		collections[c] = newCollection()
	}
	return &Index{embedder: embedder, collections: collections}
}

func (idx *Index) Add(ctx context.Context, docs []docdex.Document, coll docdex.Collection) error {
	if !coll.Valid() {
		return docdex.Errorf(docdex.EINVALID, "unknown collection %d", coll)
	}
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return err
		}
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	vectors, err := idx.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(docs) {
		return docdex.Errorf(docdex.EINTERNAL, "embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	c := idx.collections[coll]
	for i, doc := range docs {
		vec := normalize(vectors[i])
		if c.dims == 0 {
			c.dims = len(vec)
		} else if len(vec) != c.dims {
			return docdex.Errorf(docdex.EINVALID, "vector dimension mismatch: expected %d, got %d", c.dims, len(vec))
		}

		// Same ID means replace: orphan the old graph node.
		if old, ok := c.records[doc.ID]; ok {
			delete(c.keys, old.key)
		}

		key := c.nextKey
		c.nextKey++
		c.graph.Add(hnsw.MakeNode(key, vec))
		c.records[doc.ID] = &record{doc: doc, vector: vec, key: key}
		c.keys[key] = doc.ID
	}

	return nil
}

func (idx *Index) Search(ctx context.Context, query string, coll docdex.Collection, n int, filter *docdex.SearchFilter) ([]docdex.SearchResult, error) {
	if !coll.Valid() {
		return nil, docdex.Errorf(docdex.EINVALID, "unknown collection %d", coll)
	}
	if n <= 0 {
		return []docdex.SearchResult{}, nil
	}

	vectors, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, docdex.Errorf(docdex.EINTERNAL, "embedder returned %d vectors for one query", len(vectors))
	}

	return idx.searchVector(normalize(vectors[0]), coll, n, filter), nil
}

func (idx *Index) SearchAll(ctx context.Context, query string, n int) (map[docdex.Collection][]docdex.SearchResult, error) {
	vectors, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, docdex.Errorf(docdex.EINTERNAL, "embedder returned %d vectors for one query", len(vectors))
	}
	vec := normalize(vectors[0])

	var mu sync.Mutex
	results := make(map[docdex.Collection][]docdex.SearchResult, len(docdex.Collections()))

	g, _ := errgroup.WithContext(ctx)
	for _, coll := range docdex.Collections() {
		g.Go(func() error {
			matches := idx.searchVector(vec, coll, n, nil)
			mu.Lock()
			results[coll] = matches
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (idx *Index) Stats(ctx context.Context) (map[docdex.Collection]docdex.CollectionStats, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats := make(map[docdex.Collection]docdex.CollectionStats, len(idx.collections))
	for _, coll := range docdex.Collections() {
		c, ok := idx.collections[coll]
		if !ok {
			stats[coll] = docdex.CollectionStats{Error: "collection not initialized"}
			continue
		}
		stats[coll] = docdex.CollectionStats{DocumentCount: len(c.records)}
	}
	return stats, nil
}

func (idx *Index) Delete(ctx context.Context, ids []string, coll docdex.Collection) error {
	if !coll.Valid() {
		return docdex.Errorf(docdex.EINVALID, "unknown collection %d", coll)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	c := idx.collections[coll]
	for _, id := range ids {
		rec, ok := c.records[id]
		if !ok {
			continue
		}
		delete(c.keys, rec.key)
		delete(c.records, id)
	}
	return nil
}

// searchVector runs a nearest-neighbor query against one collection. The
// query vector must already be normalized.
func (idx *Index) searchVector(vec []float32, coll docdex.Collection, n int, filter *docdex.SearchFilter) []docdex.SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	c := idx.collections[coll]
	if c.graph.Len() == 0 || len(vec) != c.dims {
		return []docdex.SearchResult{}
	}

	k := n
	if filter != nil {
		k = n * filterOversample
	}
	nodes := c.graph.Search(vec, k)

	results := make([]docdex.SearchResult, 0, n)
	for _, node := range nodes {
		id, ok := c.keys[node.Key]
		if !ok {
			continue // lazily deleted
		}
		rec := c.records[id]
		if !filter.Match(rec.doc.Metadata) {
			continue
		}

		distance := c.graph.Distance(vec, node.Value)
		results = append(results, docdex.SearchResult{
			ID:         id,
			Content:    rec.doc.Content,
			Metadata:   rec.doc.Metadata,
			Similarity: 1 - distance,
		})
		if len(results) == n {
			break
		}
	}
	return results
}

// normalize returns a unit-length copy of v. A zero vector is returned
// unchanged.
func normalize(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	out := make([]float32, len(v))
	copy(out, v)
	if sumSquares == 0 {
		return out
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range out {
		out[i] *= inv
	}
	return out
}
