package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docPage() string {
	para := strings.Repeat("The configuration system reads options from the environment and merges them with defaults. ", 4)
	return `<html><head><title>Configuration</title></head><body>
		<nav><a href="/">home</a><a href="/about">about</a></nav>
		<article>
			<h1>Configuration</h1>
			<p>` + para + `</p>
			<p>` + para + `</p>
		</article>
		<footer>copyright notice</footer>
	</body></html>`
}

func TestExtractor_extracts_main_content(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor()
	res, err := e.Extract(docPage(), "https://example.com/docs/config")
	require.NoError(t, err)

	assert.Equal(t, "Configuration", res.Title)
	assert.Contains(t, res.Text, "configuration system reads options")
}

func TestExtractor_rejects_empty_input(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor()
	_, err := e.Extract("", "https://example.com/docs")
	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}
