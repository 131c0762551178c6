package nezamdoc

import "context"

// ManifestStore persists discovery results as dated manifest snapshots.
// A manifest is the durable record of what a portal offered on a given
// day; extraction always works from a saved manifest, never from
// in-memory discovery results.
type ManifestStore interface {
	// Save writes items as a new manifest snapshot and returns its path.
	Save(ctx context.Context, items []Item) (string, error)

	// Load reads a manifest back from path. Items without a usable
	// identifier or name are preserved as-is; filtering is the caller's
	// concern. Returns ENOTFOUND when no manifest exists at path.
	Load(ctx context.Context, path string) ([]Item, error)
}
