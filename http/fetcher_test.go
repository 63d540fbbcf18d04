package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	docdexhttp "github.com/fwojciec/docdex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_returns_body_and_sends_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>docs</body></html>"))
	}))
	defer srv.Close()

	f := docdexhttp.NewFetcher()
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>docs</body></html>", html)
	assert.Equal(t, docdexhttp.DefaultUserAgent, gotUA)
}

func TestFetcher_Fetch_rejects_non_200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := docdexhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcher_Exists_probes_with_head(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/docs/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := docdexhttp.NewFetcher()
	defer f.Close()

	assert.True(t, f.Exists(context.Background(), srv.URL+"/docs/"))
	assert.False(t, f.Exists(context.Background(), srv.URL+"/nope"))
}

func TestFetcher_Exists_treats_network_errors_as_absent(t *testing.T) {
	t.Parallel()

	f := docdexhttp.NewFetcher()
	defer f.Close()

	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	assert.False(t, f.Exists(context.Background(), url))
}
