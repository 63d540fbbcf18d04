package docdex

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultChunkSize is the flush threshold for the chunker, in characters.
const DefaultChunkSize = 500

// sentenceRE splits text on runs of sentence-terminal punctuation.
var sentenceRE = regexp.MustCompile(`[.!?]+`)

// whitespaceRE matches runs of whitespace, including Unicode space
// separators.
var whitespaceRE = regexp.MustCompile(`[\s\p{Z}]+`)

// noiseRE matches characters outside the conservative allow-set: letters
// and digits in any script, plus common punctuation. Everything else is
// considered non-textual noise. The classes must stay Unicode-aware;
// accented and CJK text is regular content, not noise.
var noiseRE = regexp.MustCompile("[^\\p{L}\\p{N}_\\s\\p{Z}.,!?:;()\\-=+*/\\\\\\[\\]{}\"'`]")

// CleanText collapses whitespace runs and strips non-textual noise from
// extracted page text.
func CleanText(text string) string {
	text = whitespaceRE.ReplaceAllString(text, " ")
	text = noiseRE.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// SplitChunks splits cleaned text into bounded-size retrieval units.
//
// Sentences accumulate in a buffer that is flushed just before appending a
// sentence would exceed maxSize characters. A single sentence longer than
// maxSize is kept intact as an oversized chunk rather than truncated; this
// is accepted overflow, not a defect. Chunk ordinals restart at 0 for every
// call, i.e. per page.
func SplitChunks(text, pageURL, library string, maxSize int) []Chunk {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	var chunks []Chunk
	var current string

	flush := func() {
		if current == "" {
			return
		}
		chunks = append(chunks, Chunk{
			Content: strings.TrimSpace(current),
			URL:     pageURL,
			Library: library,
			ChunkID: fmt.Sprintf("%s_%d", library, len(chunks)),
		})
		current = ""
	}

	for _, sentence := range sentenceRE.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if len(current)+len(sentence) > maxSize {
			flush()
			current = sentence
			continue
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	flush()

	return chunks
}
