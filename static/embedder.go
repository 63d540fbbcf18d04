// Package static implements a local, hash-based embedding strategy. It
// needs no network and no model download, trading semantic quality for
// determinism and zero setup.
package static

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/fwojciec/docdex"
)

// Dimensions is the fixed output vector size.
const Dimensions = 384

// Vector generation weights.
const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

// programmingStopWords are common language keywords filtered before hashing.
var programmingStopWords = map[string]bool{
	"func": true, "function": true, "def": true, "class": true,
	"return": true, "import": true, "const": true, "var": true,
	"let": true, "int": true, "string": true, "bool": true,
	"void": true, "true": true, "false": true, "nil": true,
	"null": true, "this": true, "self": true, "new": true,
}

// tokenRE matches identifier-like sequences. Underscores are kept so
// snake_case identifiers survive as one match and split below.
var tokenRE = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// Ensure Embedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*Embedder)(nil)

type request struct {
	texts []string
	reply chan [][]float32
}

// Embedder is the local embedding strategy. All embedding work runs on a
// single dedicated goroutine, serializing access to the model state.
type Embedder struct {
	requests  chan request
	done      chan struct{}
	closeOnce sync.Once
}

// NewEmbedder starts the embedding worker.
func NewEmbedder() *Embedder {
	e := &Embedder{
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	go e.worker()
	return e
}

func (e *Embedder) worker() {
	for {
		select {
		case req := <-e.requests:
			vectors := make([][]float32, len(req.texts))
			for i, text := range req.texts {
				vectors[i] = embedText(text)
			}
			req.reply <- vectors
		case <-e.done:
			return
		}
	}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	// The worker may not have observed a close yet, so check before
	// offering it work.
	select {
	case <-e.done:
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "embedder is closed")
	default:
	}

	req := request{texts: texts, reply: make(chan [][]float32, 1)}
	select {
	case e.requests <- req:
	case <-e.done:
		return nil, docdex.Errorf(docdex.EUNAVAILABLE, "embedder is closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case vectors := <-req.reply:
		return vectors, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the worker. Safe to call more than once.
func (e *Embedder) Close() error {
	e.closeOnce.Do(func() { close(e.done) })
	return nil
}

// embedText produces a normalized hash-based vector: tokens weighted 0.7,
// character trigrams weighted 0.3.
func embedText(text string) []float32 {
	vector := make([]float32, Dimensions)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return vector
	}

	for _, token := range tokenize(trimmed) {
		if programmingStopWords[token] {
			continue
		}
		vector[hashToIndex(token)] += tokenWeight
	}

	normalized := normalizeForNgrams(trimmed)
	for i := 0; i+ngramSize <= len(normalized); i++ {
		vector[hashToIndex(normalized[i:i+ngramSize])] += ngramWeight
	}

	return normalizeVector(vector)
}

// tokenize splits text into lowercased tokens, breaking camelCase and
// snake_case identifiers apart.
func tokenize(text string) []string {
	var tokens []string
	for _, word := range tokenRE.FindAllString(text, -1) {
		for _, part := range strings.Split(word, "_") {
			for _, t := range splitCamelCase(part) {
				tokens = append(tokens, strings.ToLower(t))
			}
		}
	}
	return tokens
}

// splitCamelCase splits camelCase identifiers, keeping acronym runs intact.
func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevIsLower := unicode.IsLower(runes[i-1])
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevIsLower || nextIsLower {
				if current.Len() > 0 {
					result = append(result, current.String())
					current.Reset()
				}
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// normalizeForNgrams lowercases and strips everything but letters and digits.
func normalizeForNgrams(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// hashToIndex maps a string to a vector index with FNV-64.
func hashToIndex(s string) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(Dimensions))
}

// normalizeVector scales v to unit length in place.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= inv
	}
	return v
}
