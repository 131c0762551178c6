package harvest

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

// Compile-time interface verification.
var (
	_ nezamdoc.Locator = (*URLLocator)(nil)
	_ nezamdoc.Locator = (*ListingLocator)(nil)
)

// URLLocator reaches items that carry their own URL: it navigates the
// page directly and gives dynamic content a short window to render.
type URLLocator struct {
	Page nezamdoc.Page
	Site *nezamdoc.Site
}

// Locate implements nezamdoc.Locator.
func (l *URLLocator) Locate(ctx context.Context, item nezamdoc.Item) error {
	if item.URL == "" {
		return nezamdoc.Errorf(nezamdoc.ENOTFOUND, "item %s has no URL", item.Ref())
	}

	navCtx, cancel := context.WithTimeout(ctx, l.Site.Timeouts.Navigate)
	defer cancel()
	if err := l.Page.Navigate(navCtx, item.URL); err != nil {
		return err
	}

	AwaitText(ctx, l.Page, l.Site.ContentSelector, l.Site.Timeouts.Settle)
	return nil
}

// ListingLocator reaches items that exist only as entries of a rendered
// listing: it re-renders the listing, clicks the entry whose text equals
// the item name, and waits for the content region. Re-rendering on every
// item avoids stale element handles from the previous navigation.
type ListingLocator struct {
	Page nezamdoc.Page
	Site *nezamdoc.Site
}

// Locate implements nezamdoc.Locator.
func (l *ListingLocator) Locate(ctx context.Context, item nezamdoc.Item) error {
	if item.Name == "" {
		return nezamdoc.Errorf(nezamdoc.ENOTFOUND, "item %s has no name", item.Ref())
	}

	navCtx, cancel := context.WithTimeout(ctx, l.Site.Timeouts.Navigate)
	if err := l.Page.Navigate(navCtx, l.Site.HomeURL); err != nil {
		cancel()
		return err
	}
	cancel()

	listCtx, cancel := context.WithTimeout(ctx, l.Site.Timeouts.List)
	if err := l.Page.WaitVisible(listCtx, l.Site.ListSelector); err != nil {
		cancel()
		return err
	}
	cancel()

	if err := l.Page.ClickText(ctx, l.Site.ListSelector, item.Name); err != nil {
		return err
	}

	contentCtx, cancel := context.WithTimeout(ctx, l.Site.Timeouts.Content)
	if err := l.Page.WaitVisible(contentCtx, l.Site.ContentSelector); err != nil {
		cancel()
		return err
	}
	cancel()

	idleCtx, cancel := context.WithTimeout(ctx, l.Site.Timeouts.Idle)
	defer cancel()
	return l.Page.WaitIdle(idleCtx)
}

// ForSite returns the locator matching the site's discovery mode:
// response-discovered items carry URLs, listing-discovered items are
// reached through the listing.
func ForSite(page nezamdoc.Page, site *nezamdoc.Site) nezamdoc.Locator {
	if site.Mode == nezamdoc.DiscoverByListing {
		return &ListingLocator{Page: page, Site: site}
	}
	return &URLLocator{Page: page, Site: site}
}
