package hnsw_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/hnsw"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps known texts onto fixed unit vectors so nearest-neighbor
// order is fully predictable.
func axisEmbedder(vectors map[string][]float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i, t := range texts {
				v, ok := vectors[t]
				if !ok {
					v = []float32{1, 1, 1}
				}
				out[i] = v
			}
			return out, nil
		},
	}
}

func doc(id, content, library string, typ docdex.DocumentType) docdex.Document {
	return docdex.Document{
		ID:      id,
		Content: content,
		Metadata: docdex.Metadata{
			Library: library,
			URL:     "https://example.com/docs",
			Title:   "Docs",
			Type:    typ,
		},
	}
}

func TestIndex_Search_orders_results_by_similarity(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{
		"routing":    {1, 0, 0},
		"templating": {0, 1, 0},
		"almost":     {0.9, 0.1, 0},
	})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "routing", "widgetlib", docdex.DocumentTypeDocumentation),
		doc("d2", "templating", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	results, err := idx.Search(ctx, "almost", docdex.CollectionDocumentation, 2, nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "d1", results[0].ID)
	assert.Equal(t, "d2", results[1].ID)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	assert.Equal(t, "routing", results[0].Content)
}

func TestIndex_Search_on_an_empty_collection_returns_empty(t *testing.T) {
	t.Parallel()

	idx := hnsw.NewIndex(axisEmbedder(nil))

	results, err := idx.Search(context.Background(), "anything", docdex.CollectionAPI, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestIndex_Search_applies_metadata_filters(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{
		"routing": {1, 0, 0},
		"similar": {0.9, 0.1, 0},
	})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "routing", "widgetlib", docdex.DocumentTypeDocumentation),
		doc("d2", "similar", "otherlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	library := "otherlib"
	results, err := idx.Search(ctx, "routing", docdex.CollectionDocumentation, 5, &docdex.SearchFilter{Library: &library})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "d2", results[0].ID)
}

func TestIndex_Add_with_an_existing_ID_replaces_the_document(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{
		"old text": {1, 0, 0},
		"new text": {0, 1, 0},
	})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "old text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))
	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "new text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	results, err := idx.Search(ctx, "new text", docdex.CollectionDocumentation, 5, nil)
	require.NoError(t, err)

	require.Len(t, results, 1, "the old version must not surface")
	assert.Equal(t, "new text", results[0].Content)

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[docdex.CollectionDocumentation].DocumentCount)
}

func TestIndex_Add_rejects_inconsistent_dimensions(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{
		"three": {1, 0, 0},
		"two":   {1, 0},
	})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "three", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	err := idx.Add(ctx, []docdex.Document{
		doc("d2", "two", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}

func TestIndex_Add_propagates_embedder_failures(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, docdex.Errorf(docdex.EUNAVAILABLE, "embedding provider unreachable")
		},
	}
	idx := hnsw.NewIndex(embedder)

	err := idx.Add(context.Background(), []docdex.Document{
		doc("d1", "text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation)
	assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
}

func TestIndex_Delete_removes_documents_and_ignores_unknown_IDs(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{"text": {1, 0, 0}})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	require.NoError(t, idx.Delete(ctx, []string{"d1", "never-existed"}, docdex.CollectionDocumentation))

	results, err := idx.Search(ctx, "text", docdex.CollectionDocumentation, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats[docdex.CollectionDocumentation].DocumentCount)
}

func TestIndex_SearchAll_returns_an_entry_for_every_collection(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{"text": {1, 0, 0}})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))

	results, err := idx.SearchAll(ctx, "text", 5)
	require.NoError(t, err)

	require.Len(t, results, 4)
	assert.Len(t, results[docdex.CollectionDocumentation], 1)
	for _, coll := range []docdex.Collection{docdex.CollectionAPI, docdex.CollectionExamples, docdex.CollectionTutorials} {
		assert.Empty(t, results[coll])
		assert.NotNil(t, results[coll], "empty collections still get an entry")
	}
}

func TestIndex_Stats_counts_every_collection(t *testing.T) {
	t.Parallel()

	embedder := axisEmbedder(map[string][]float32{"text": {1, 0, 0}})
	idx := hnsw.NewIndex(embedder)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("d1", "text", "widgetlib", docdex.DocumentTypeDocumentation),
		doc("d2", "text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.CollectionDocumentation))
	require.NoError(t, idx.Add(ctx, []docdex.Document{
		doc("e1", "text", "widgetlib", docdex.DocumentTypeCodeExample),
	}, docdex.CollectionExamples))

	stats, err := idx.Stats(ctx)
	require.NoError(t, err)

	require.Len(t, stats, 4)
	assert.Equal(t, 2, stats[docdex.CollectionDocumentation].DocumentCount)
	assert.Equal(t, 1, stats[docdex.CollectionExamples].DocumentCount)
	assert.Equal(t, 0, stats[docdex.CollectionAPI].DocumentCount)
}

func TestIndex_Add_rejects_an_invalid_collection(t *testing.T) {
	t.Parallel()

	idx := hnsw.NewIndex(axisEmbedder(nil))

	err := idx.Add(context.Background(), []docdex.Document{
		doc("d1", "text", "widgetlib", docdex.DocumentTypeDocumentation),
	}, docdex.Collection(99))
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}
