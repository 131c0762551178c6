package nezamdoc

import (
	"strings"
	"time"
)

// DiscoveryMode selects how a site's items are discovered.
type DiscoveryMode string

// Discovery modes.
const (
	// DiscoverByResponse captures a background data response while the
	// home page loads and decodes the item list from its body.
	DiscoverByResponse DiscoveryMode = "response"

	// DiscoverByListing enumerates the rendered entries of a listing
	// page. Items found this way carry names only, no IDs or URLs.
	DiscoverByListing DiscoveryMode = "listing"
)

// ResponseMatch identifies the background exchange that carries a site's
// item data.
type ResponseMatch struct {
	// URLPart is a substring the request URL must contain.
	URLPart string

	// Method is the required request method, e.g. "POST".
	Method string
}

// RepairSpec configures one structural repair applied to extracted
// content before linearization. Outer selects damaged wrapper elements;
// Inner selects the nested fragments to merge into them.
type RepairSpec struct {
	Outer string
	Inner string
}

// Replacement is a literal substitution applied to a title before it is
// sanitized into a filename.
type Replacement struct {
	Old string
	New string
}

// Font describes the document font defaults. Size is in points; zero
// means no size override.
type Font struct {
	Name string
	Size float64
}

// Timeouts bounds the blocking browser operations. Zero values are
// replaced with the package defaults by Normalize.
type Timeouts struct {
	// Navigate bounds page loads.
	Navigate time.Duration

	// Response bounds the wait for the discovery data exchange.
	Response time.Duration

	// List bounds the wait for the listing elements to render.
	List time.Duration

	// Content bounds the wait for an item's content region to render.
	Content time.Duration

	// Idle bounds the wait for network activity to quiet down.
	Idle time.Duration

	// Settle bounds the wait for late re-renders after content appears.
	Settle time.Duration
}

// Default bounds for blocking browser operations.
const (
	DefaultNavigateTimeout = 30 * time.Second
	DefaultResponseTimeout = 30 * time.Second
	DefaultListTimeout     = 30 * time.Second
	DefaultContentTimeout  = 30 * time.Second
	DefaultIdleTimeout     = 10 * time.Second
	DefaultSettleTimeout   = 5 * time.Second
)

// Site describes how one portal is harvested. Everything that differs
// between portals lives here: URLs, selectors, timing bounds and output
// conventions. The harvesting code itself is site-agnostic.
type Site struct {
	// Name identifies the site in configuration, logs and run records.
	Name string

	// HomeURL is the page that exposes the site's item catalogue.
	HomeURL string

	// Locale is the browser locale override, e.g. "ar-SA".
	Locale string

	// Mode selects the discovery strategy.
	Mode DiscoveryMode

	// Response identifies the data exchange for DiscoverByResponse.
	Response ResponseMatch

	// ListSelector matches the listing entries for DiscoverByListing.
	ListSelector string

	// ExcludeHeading is a listing entry text to skip, used when the
	// portal renders a section heading inside the same list.
	ExcludeHeading string

	// TitleSelector matches the rendered title of an item. Optional;
	// when empty or not found, FallbackTitle is used.
	TitleSelector string

	// ContentSelector matches the rendered content region of an item.
	ContentSelector string

	// FallbackTitle replaces a missing title.
	FallbackTitle string

	// NoiseSelectors match elements stripped from content before
	// linearization: share widgets, font-size toolbars and similar.
	NoiseSelectors []string

	// Repairs are structural repairs applied to content.
	Repairs []RepairSpec

	// Replacements are applied to titles before filename sanitizing.
	Replacements []Replacement

	// ManifestDir is the directory manifests are written to.
	ManifestDir string

	// ManifestName is the manifest filename template. A "{date}"
	// placeholder is replaced with the current date.
	ManifestName string

	// OutputDir is the directory documents are written to.
	OutputDir string

	// Font is the document font to apply, best-effort.
	Font Font

	// Timeouts bounds the site's blocking browser operations.
	Timeouts Timeouts
}

// Validate returns an error if the site configuration is incomplete.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.HomeURL == "" {
		return Errorf(EINVALID, "site home URL required")
	}
	switch s.Mode {
	case DiscoverByResponse:
		if s.Response.URLPart == "" {
			return Errorf(EINVALID, "response URL part required for response discovery")
		}
		if s.Response.Method == "" {
			return Errorf(EINVALID, "response method required for response discovery")
		}
	case DiscoverByListing:
		if s.ListSelector == "" {
			return Errorf(EINVALID, "list selector required for listing discovery")
		}
	default:
		return Errorf(EINVALID, "unknown discovery mode %q", s.Mode)
	}
	if s.ContentSelector == "" {
		return Errorf(EINVALID, "site content selector required")
	}
	if s.OutputDir == "" {
		return Errorf(EINVALID, "site output directory required")
	}
	return nil
}

// Normalize fills unset optional fields with defaults.
func (s *Site) Normalize() {
	if s.ManifestDir == "" {
		s.ManifestDir = "."
	}
	if s.ManifestName == "" {
		s.ManifestName = s.Name + "_Items.{date}.json"
	}
	if s.FallbackTitle == "" {
		s.FallbackTitle = FallbackFilename
	}
	if s.Timeouts.Navigate == 0 {
		s.Timeouts.Navigate = DefaultNavigateTimeout
	}
	if s.Timeouts.Response == 0 {
		s.Timeouts.Response = DefaultResponseTimeout
	}
	if s.Timeouts.List == 0 {
		s.Timeouts.List = DefaultListTimeout
	}
	if s.Timeouts.Content == 0 {
		s.Timeouts.Content = DefaultContentTimeout
	}
	if s.Timeouts.Idle == 0 {
		s.Timeouts.Idle = DefaultIdleTimeout
	}
	if s.Timeouts.Settle == 0 {
		s.Timeouts.Settle = DefaultSettleTimeout
	}
}

// FileTitle applies the site's replacements to title and sanitizes the
// result into a filename component.
func (s *Site) FileTitle(title string) string {
	for _, rep := range s.Replacements {
		if rep.Old == "" {
			continue
		}
		title = strings.ReplaceAll(title, rep.Old, rep.New)
	}
	return SanitizeFilename(title)
}
