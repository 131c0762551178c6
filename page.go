package nezamdoc

import (
	"context"
	"net/url"
)

// Exchange is a background request/response pair captured while a page
// loads, typically the AJAX call a portal uses to fetch its listing data.
type Exchange struct {
	// URL is the full request URL.
	URL string

	// Method is the request method, e.g. "POST".
	Method string

	// ContentType is the response Content-Type header.
	ContentType string

	// Body is the response body.
	Body string

	// RequestBody is the raw form-encoded request body.
	RequestBody string
}

// FormValue returns the named field from the form-encoded request body.
// Returns an empty string when the field is absent or the body does not
// parse as a form.
func (e *Exchange) FormValue(key string) string {
	values, err := url.ParseQuery(e.RequestBody)
	if err != nil {
		return ""
	}
	return values.Get(key)
}

// Page drives a single browser page. Implementations wrap a browser
// automation engine; all blocking calls honor the context deadline.
//
// Methods take selectors rather than element handles because a rendered
// element is only valid until the next navigation. Re-querying on every
// call keeps callers safe across page loads.
type Page interface {
	// Navigate loads url and waits until the DOM content is ready.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until an element matching selector is rendered
	// and visible.
	WaitVisible(ctx context.Context, selector string) error

	// Text returns the trimmed visible text of the first element matching
	// selector. Unlike WaitVisible it does not wait: it returns ENOTFOUND
	// immediately when no element matches.
	Text(ctx context.Context, selector string) (string, error)

	// Texts returns the trimmed visible text of every element currently
	// matching selector, in document order.
	Texts(ctx context.Context, selector string) ([]string, error)

	// HTML returns the outer HTML of the first element matching selector.
	// Returns ENOTFOUND when no element matches.
	HTML(ctx context.Context, selector string) (string, error)

	// ClickText clicks the element matching selector whose trimmed visible
	// text equals text exactly. Returns ENOTFOUND when no element matches.
	ClickText(ctx context.Context, selector, text string) error

	// WaitIdle blocks until the page's network activity quiets down.
	WaitIdle(ctx context.Context) error

	// CaptureResponse navigates to pageURL and returns the first background
	// exchange whose request URL contains urlPart and whose method matches
	// method. Returns ETIMEOUT when no matching exchange arrives before the
	// context deadline.
	CaptureResponse(ctx context.Context, pageURL, urlPart, method string) (*Exchange, error)

	// Close releases the page.
	Close() error
}
