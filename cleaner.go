package nezamdoc

// Cleaner reduces a raw HTML content fragment to plain text.
type Cleaner interface {
	// Clean strips configured noise elements from fragment, applies
	// structural repairs, and linearizes the remaining visible text with
	// newlines between block-level runs. Returns ENOTFOUND when no
	// visible text remains after cleaning.
	Clean(fragment string) (string, error)
}
