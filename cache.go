package docdex

import "context"

// BundleCache persists scraped snapshots, one unit per library.
type BundleCache interface {
	// Load returns the cached bundle for a library.
	// Returns ENOTFOUND when no snapshot exists. Read faults propagate;
	// they are never folded into an empty bundle.
	Load(ctx context.Context, library string) (*ScrapeBundle, error)

	// Save overwrites the persisted unit for the bundle's library.
	Save(ctx context.Context, bundle *ScrapeBundle) error
}
