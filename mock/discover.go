package mock

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

// Compile-time interface verification.
var (
	_ nezamdoc.Discoverer = (*Discoverer)(nil)
	_ nezamdoc.Locator    = (*Locator)(nil)
)

// Discoverer is a mock implementation of nezamdoc.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context) ([]nezamdoc.Item, error)
}

func (d *Discoverer) Discover(ctx context.Context) ([]nezamdoc.Item, error) {
	return d.DiscoverFn(ctx)
}

// Locator is a mock implementation of nezamdoc.Locator.
type Locator struct {
	LocateFn func(ctx context.Context, item nezamdoc.Item) error
}

func (l *Locator) Locate(ctx context.Context, item nezamdoc.Item) error {
	return l.LocateFn(ctx, item)
}
