package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.BundleCache = (*BundleCache)(nil)

// BundleCache implements docdex.BundleCache using SQLite. Each library maps
// to one row holding the JSON-encoded bundle.
type BundleCache struct {
	db *DB
}

// NewBundleCache creates a new BundleCache.
func NewBundleCache(db *DB) *BundleCache {
	return &BundleCache{db: db}
}

func (c *BundleCache) Load(ctx context.Context, library string) (*docdex.ScrapeBundle, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT payload FROM bundles WHERE library = ?
	`, cacheKey(library)).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no cached documentation for library %q", library)
	}
	if err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "reading cache for %q: %v", library, err)
	}

	var bundle docdex.ScrapeBundle
	if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "decoding cache for %q: %v", library, err)
	}
	return &bundle, nil
}

func (c *BundleCache) Save(ctx context.Context, bundle *docdex.ScrapeBundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(bundle)
	if err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "encoding cache for %q: %v", bundle.Library, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO bundles (library, payload, scraped_at)
		VALUES (?, ?, ?)
		ON CONFLICT(library) DO UPDATE SET payload = excluded.payload, scraped_at = excluded.scraped_at
	`, cacheKey(bundle.Library), string(payload), bundle.ScrapedAt.Format(time.RFC3339))
	if err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "writing cache for %q: %v", bundle.Library, err)
	}
	return nil
}

// cacheKey normalizes a library name to its storage key.
func cacheKey(library string) string {
	return strings.ToLower(strings.TrimSpace(library))
}
