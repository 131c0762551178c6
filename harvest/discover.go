package harvest

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/rashidq/nezamdoc"
)

// Compile-time interface verification.
var (
	_ nezamdoc.Discoverer = (*ResponseDiscoverer)(nil)
	_ nezamdoc.Discoverer = (*ListingDiscoverer)(nil)
)

// ResponseDiscoverer finds items by loading the site's home page and
// capturing the background data exchange that carries the catalogue.
type ResponseDiscoverer struct {
	Page nezamdoc.Page
	Site *nezamdoc.Site

	// Logger, when set, receives diagnostics such as the form nonce the
	// portal sent with its data request. Nothing is done with the nonce
	// beyond logging it.
	Logger *slog.Logger
}

// Discover implements nezamdoc.Discoverer. The wait for the data
// exchange is fatal when it times out; a catalogue payload that fails
// to decode is not, and yields an empty item list.
func (d *ResponseDiscoverer) Discover(ctx context.Context) ([]nezamdoc.Item, error) {
	captureCtx, cancel := context.WithTimeout(ctx, d.Site.Timeouts.Response)
	defer cancel()

	exchange, err := d.Page.CaptureResponse(captureCtx, d.Site.HomeURL, d.Site.Response.URLPart, d.Site.Response.Method)
	if err != nil {
		return nil, err
	}

	if d.Logger != nil {
		if nonce := exchange.FormValue("_wpnonce"); nonce != "" {
			d.Logger.Debug("captured form nonce", "nonce", nonce)
		}
	}

	return parseCatalogue(exchange.Body), nil
}

// cataloguePayload is the JSON shape of the portal's listing response.
type cataloguePayload struct {
	Data []struct {
		ID   json.Number `json:"id"`
		Text string      `json:"text"`
		Link string      `json:"link"`
	} `json:"data"`
}

// parseCatalogue decodes payload entries into items, dropping entries
// without an ID. Decode failures yield no items rather than an error;
// the portal occasionally serves an HTML error page through the same
// endpoint and an empty manifest is the accurate record of that.
func parseCatalogue(body string) []nezamdoc.Item {
	var payload cataloguePayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return []nezamdoc.Item{}
	}

	items := make([]nezamdoc.Item, 0, len(payload.Data))
	for _, entry := range payload.Data {
		if entry.ID == "" {
			continue
		}
		items = append(items, nezamdoc.Item{
			ID:   entry.ID,
			Name: entry.Text,
			URL:  entry.Link,
		})
	}
	return items
}

// ListingDiscoverer finds items by enumerating the rendered entries of
// the site's listing page. Items found this way carry names only.
type ListingDiscoverer struct {
	Page nezamdoc.Page
	Site *nezamdoc.Site
}

// Discover implements nezamdoc.Discoverer. The wait for the listing to
// render is fatal when it times out.
func (d *ListingDiscoverer) Discover(ctx context.Context) ([]nezamdoc.Item, error) {
	navCtx, cancel := context.WithTimeout(ctx, d.Site.Timeouts.Navigate)
	if err := d.Page.Navigate(navCtx, d.Site.HomeURL); err != nil {
		cancel()
		return nil, err
	}
	cancel()

	listCtx, cancel := context.WithTimeout(ctx, d.Site.Timeouts.List)
	defer cancel()
	if err := d.Page.WaitVisible(listCtx, d.Site.ListSelector); err != nil {
		return nil, err
	}

	texts, err := d.Page.Texts(ctx, d.Site.ListSelector)
	if err != nil {
		return nil, err
	}

	items := make([]nezamdoc.Item, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" || text == d.Site.ExcludeHeading {
			continue
		}
		items = append(items, nezamdoc.Item{Name: text})
	}
	return items, nil
}

// DiscovererForSite returns the discoverer matching the site's mode.
func DiscovererForSite(page nezamdoc.Page, site *nezamdoc.Site, logger *slog.Logger) nezamdoc.Discoverer {
	if site.Mode == nezamdoc.DiscoverByListing {
		return &ListingDiscoverer{Page: page, Site: site}
	}
	return &ResponseDiscoverer{Page: page, Site: site, Logger: logger}
}
