package docdex_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks_respects_max_size(t *testing.T) {
	t.Parallel()

	// Build ~600 characters of short sentences.
	var sb strings.Builder
	for i := 0; sb.Len() < 600; i++ {
		fmt.Fprintf(&sb, "Sentence number %d has a modest length. ", i)
	}

	chunks := docdex.SplitChunks(sb.String(), "https://example.com/docs", "lib", 500)

	require.GreaterOrEqual(t, len(chunks), 2, "600 chars with maxSize=500 must yield at least 2 chunks")
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Content), 500)
	}
}

func TestSplitChunks_keeps_oversized_sentence_whole(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 150) + "end" // well over 500 chars, no terminal punctuation inside
	text := "Short lead-in. " + long + ". Short tail."

	chunks := docdex.SplitChunks(text, "https://example.com/docs", "lib", 500)

	var found bool
	for _, c := range chunks {
		if strings.Contains(c.Content, "end") {
			found = true
			assert.Greater(t, len(c.Content), 500, "oversized sentence is preserved, not truncated")
			assert.Contains(t, c.Content, strings.TrimSpace(long))
		}
	}
	assert.True(t, found, "oversized sentence must appear in some chunk")
}

func TestSplitChunks_assigns_per_page_ordinals(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("Alpha beta gamma delta epsilon zeta eta theta. ", 30)
	chunks := docdex.SplitChunks(text, "https://example.com/docs", "react", 500)

	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, fmt.Sprintf("react_%d", i), c.ChunkID)
		assert.Equal(t, "https://example.com/docs", c.URL)
		assert.Equal(t, "react", c.Library)
	}
}

func TestSplitChunks_empty_text_yields_no_chunks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docdex.SplitChunks("", "https://example.com", "lib", 500))
	assert.Empty(t, docdex.SplitChunks("   \n\t  ", "https://example.com", "lib", 500))
}

func TestCleanText_collapses_whitespace_and_strips_noise(t *testing.T) {
	t.Parallel()

	in := "Hello\n\n\t  world. (parens) [brackets] `code`  "
	out := docdex.CleanText(in)
	assert.Equal(t, "Hello world. (parens) [brackets] `code`", out)

	// Non-textual noise is stripped after whitespace collapsing.
	noisy := docdex.CleanText("snow☃man © 2024")
	assert.NotContains(t, noisy, "☃")
	assert.NotContains(t, noisy, "©")
	assert.Contains(t, noisy, "snowman")
}

func TestCleanText_preserves_non_ASCII_word_characters(t *testing.T) {
	t.Parallel()

	in := "café über naïve 日本語のドキュメント"
	assert.Equal(t, in, docdex.CleanText(in))

	// Unicode space separators collapse like ASCII whitespace.
	assert.Equal(t, "très bien", docdex.CleanText("très  bien"))
}
