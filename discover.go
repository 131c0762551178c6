package nezamdoc

import "context"

// Discoverer finds the candidate items a portal publishes.
// Implementations hide how the portal exposes its catalogue: some sites
// load it through a background data request, others render it directly
// into a listing page.
type Discoverer interface {
	Discover(ctx context.Context) ([]Item, error)
}

// Locator brings a page to the point where one item's content is rendered
// and ready to read. Implementations hide how an item is reached: direct
// navigation for items that carry URLs, or re-rendering the listing and
// clicking the entry whose text matches the item name.
type Locator interface {
	// Locate returns ENOTFOUND when the item cannot be matched on the
	// page and ETIMEOUT when its content region does not materialize in
	// time. Both are per-item conditions; the caller decides whether to
	// skip or abort.
	Locate(ctx context.Context, item Item) error
}
