// Package gemini implements the remote embedding strategy using the Google
// Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*Embedder)(nil)

// Embedder implements docdex.Embedder using Google Gemini. Provider failures
// surface as EUNAVAILABLE; there is no fallback to another strategy.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, "user")
	}

	result, err := e.client.Models.EmbedContent(ctx, embeddingModel, contents, nil)
	if err != nil {
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "gemini embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Close releases client resources. The genai client holds no connection
// state that needs explicit cleanup.
func (e *Embedder) Close() error {
	return nil
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
