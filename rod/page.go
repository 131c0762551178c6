package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rashidq/nezamdoc"
)

// Ensure Page implements nezamdoc.Page at compile time.
var _ nezamdoc.Page = (*Page)(nil)

// idleQuiet is how long the network must stay quiet before WaitIdle
// considers the page settled.
const idleQuiet = 500 * time.Millisecond

// Page drives a single browser tab. Page is not safe for concurrent use.
type Page struct {
	page *rod.Page
}

// Navigate loads url and waits until DOM content is ready. Portals here
// keep loading background assets long after the document is usable, so
// waiting for the full load event would stall on slow ad and analytics
// requests.
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)

	wait := pg.WaitEvent(&proto.PageDomContentEventFired{})
	if err := pg.Navigate(url); err != nil {
		return mapTimeout(err, "navigating to %s", url)
	}
	wait()

	if err := ctx.Err(); err != nil {
		return mapTimeout(err, "page %s did not become ready", url)
	}
	return nil
}

// WaitVisible blocks until an element matching selector is rendered and
// visible.
func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	pg := p.page.Context(ctx)

	el, err := pg.Element(selector)
	if err != nil {
		return mapTimeout(err, "element %q did not appear", selector)
	}
	if err := el.WaitVisible(); err != nil {
		return mapTimeout(err, "element %q did not become visible", selector)
	}
	return nil
}

// Text returns the trimmed visible text of the first element matching
// selector without waiting for it to appear.
func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	pg := p.page.Context(ctx)

	has, el, err := pg.Has(selector)
	if err != nil {
		return "", mapTimeout(err, "querying %q", selector)
	}
	if !has {
		return "", nezamdoc.Errorf(nezamdoc.ENOTFOUND, "no element matches %q", selector)
	}
	text, err := el.Text()
	if err != nil {
		return "", mapTimeout(err, "reading text of %q", selector)
	}
	return strings.TrimSpace(text), nil
}

// Texts returns the trimmed visible text of every element currently
// matching selector.
func (p *Page) Texts(ctx context.Context, selector string) ([]string, error) {
	pg := p.page.Context(ctx)

	els, err := pg.Elements(selector)
	if err != nil {
		return nil, mapTimeout(err, "querying %q", selector)
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, mapTimeout(err, "reading text of %q", selector)
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

// HTML returns the outer HTML of the first element matching selector.
func (p *Page) HTML(ctx context.Context, selector string) (string, error) {
	pg := p.page.Context(ctx)

	has, el, err := pg.Has(selector)
	if err != nil {
		return "", mapTimeout(err, "querying %q", selector)
	}
	if !has {
		return "", nezamdoc.Errorf(nezamdoc.ENOTFOUND, "no element matches %q", selector)
	}
	html, err := el.HTML()
	if err != nil {
		return "", mapTimeout(err, "reading HTML of %q", selector)
	}
	return html, nil
}

// ClickText clicks the element matching selector whose trimmed visible
// text equals text exactly.
func (p *Page) ClickText(ctx context.Context, selector, text string) error {
	pg := p.page.Context(ctx)

	els, err := pg.Elements(selector)
	if err != nil {
		return mapTimeout(err, "querying %q", selector)
	}
	for _, el := range els {
		elText, err := el.Text()
		if err != nil {
			return mapTimeout(err, "reading text of %q", selector)
		}
		if strings.TrimSpace(elText) != text {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return mapTimeout(err, "clicking %q", text)
		}
		return nil
	}
	return nezamdoc.Errorf(nezamdoc.ENOTFOUND, "no element matching %q has text %q", selector, text)
}

// WaitIdle blocks until no network request has been in flight for
// idleQuiet, or the context expires.
func (p *Page) WaitIdle(ctx context.Context) error {
	pg := p.page.Context(ctx)

	wait := pg.WaitRequestIdle(idleQuiet, nil, nil, nil)
	wait()

	if err := ctx.Err(); err != nil {
		return mapTimeout(err, "network did not become idle")
	}
	return nil
}

// CaptureResponse navigates to pageURL and captures the first background
// exchange whose request URL contains urlPart and whose method matches
// method. The exchange is captured by intercepting the request and
// performing it through the default HTTP client, so the page still
// receives its data and keeps rendering normally.
func (p *Page) CaptureResponse(ctx context.Context, pageURL, urlPart, method string) (*nezamdoc.Exchange, error) {
	pg := p.page.Context(ctx)

	captured := make(chan *nezamdoc.Exchange, 1)
	router := pg.HijackRequests()
	err := router.Add("*"+urlPart+"*", "", func(h *rod.Hijack) {
		if !strings.EqualFold(h.Request.Method(), method) {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		requestURL := h.Request.URL().String()
		requestBody := h.Request.Body()
		if err := h.LoadResponse(http.DefaultClient, true); err != nil {
			h.Response.Fail(proto.NetworkErrorReasonFailed)
			return
		}
		exchange := &nezamdoc.Exchange{
			URL:         requestURL,
			Method:      strings.ToUpper(method),
			ContentType: h.Response.Headers().Get("Content-Type"),
			Body:        h.Response.Body(),
			RequestBody: requestBody,
		}
		select {
		case captured <- exchange:
		default:
		}
	})
	if err != nil {
		return nil, mapTimeout(err, "intercepting %q", urlPart)
	}
	go router.Run()
	defer func() { _ = router.Stop() }()

	if err := p.Navigate(ctx, pageURL); err != nil {
		return nil, err
	}

	select {
	case exchange := <-captured:
		return exchange, nil
	case <-ctx.Done():
		return nil, mapTimeout(ctx.Err(), "no %s response matching %q arrived", method, urlPart)
	}
}

// Close releases the page.
func (p *Page) Close() error {
	return p.page.Close()
}

// mapTimeout converts context deadline errors into ETIMEOUT application
// errors so callers can treat slow portals as a distinct condition.
// Other errors are wrapped with the same context.
func mapTimeout(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nezamdoc.Errorf(nezamdoc.ETIMEOUT, format+": deadline exceeded", args...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
