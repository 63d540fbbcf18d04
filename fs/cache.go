// Package fs implements filesystem-backed persistence for scrape bundles.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/docdex"
)

// safeNameRE matches characters that may not appear in a cache file name.
var safeNameRE = regexp.MustCompile(`[^\w\-.]`)

// Ensure BundleCache implements docdex.BundleCache at compile time.
var _ docdex.BundleCache = (*BundleCache)(nil)

// BundleCache stores one JSON snapshot per library under a directory.
// Writes go to a temporary file first and are moved into place atomically.
type BundleCache struct {
	dir string
}

// NewBundleCache creates a cache rooted at dir. The directory is created
// lazily on the first save.
func NewBundleCache(dir string) *BundleCache {
	return &BundleCache{dir: dir}
}

// Path returns the snapshot file path for a library.
func (c *BundleCache) Path(library string) string {
	name := safeNameRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(library)), "_")
	return filepath.Join(c.dir, name+"_docs.json")
}

func (c *BundleCache) Load(ctx context.Context, library string) (*docdex.ScrapeBundle, error) {
	data, err := os.ReadFile(c.Path(library))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "no cached documentation for library %q", library)
		}
		return nil, docdex.Errorf(docdex.EINTERNAL, "reading cache for %q: %v", library, err)
	}

	var bundle docdex.ScrapeBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "decoding cache for %q: %v", library, err)
	}
	return &bundle, nil
}

func (c *BundleCache) Save(ctx context.Context, bundle *docdex.ScrapeBundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "creating cache directory: %v", err)
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "encoding cache for %q: %v", bundle.Library, err)
	}

	path := c.Path(bundle.Library)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "writing cache for %q: %v", bundle.Library, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "committing cache for %q: %v", bundle.Library, err)
	}
	return nil
}
