package docdex

import "context"

// DiscoveryMethod identifies the strategy that produced a documentation root.
type DiscoveryMethod string

// Discovery methods, in the order they are attempted.
const (
	DiscoveryRegistry DiscoveryMethod = "registry" // static known-sites registry, no network
	DiscoveryPattern  DiscoveryMethod = "pattern"  // common documentation URL templates
	DiscoveryGitHub   DiscoveryMethod = "github"   // GitHub repo/org/pages fallback
	DiscoveryManual   DiscoveryMethod = "manual"   // caller supplied the URL directly
)

// LibraryTarget maps a library name to its resolved documentation root.
type LibraryTarget struct {
	Name   string          `json:"name"`
	URL    string          `json:"url"`
	Method DiscoveryMethod `json:"method"`
}

// Resolver maps a library name to a candidate documentation root.
type Resolver interface {
	// Resolve returns the documentation root for a library.
	// Returns ENOTFOUND if every discovery strategy fails; network faults
	// during probing are folded into ENOTFOUND, never surfaced as errors.
	Resolve(ctx context.Context, library string) (*LibraryTarget, error)
}
