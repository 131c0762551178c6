package mock

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

var _ nezamdoc.Page = (*Page)(nil)

// Page is a mock implementation of nezamdoc.Page.
type Page struct {
	NavigateFn        func(ctx context.Context, url string) error
	WaitVisibleFn     func(ctx context.Context, selector string) error
	TextFn            func(ctx context.Context, selector string) (string, error)
	TextsFn           func(ctx context.Context, selector string) ([]string, error)
	HTMLFn            func(ctx context.Context, selector string) (string, error)
	ClickTextFn       func(ctx context.Context, selector, text string) error
	WaitIdleFn        func(ctx context.Context) error
	CaptureResponseFn func(ctx context.Context, pageURL, urlPart, method string) (*nezamdoc.Exchange, error)
	CloseFn           func() error
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.NavigateFn(ctx, url)
}

func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	return p.WaitVisibleFn(ctx, selector)
}

func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	return p.TextFn(ctx, selector)
}

func (p *Page) Texts(ctx context.Context, selector string) ([]string, error) {
	return p.TextsFn(ctx, selector)
}

func (p *Page) HTML(ctx context.Context, selector string) (string, error) {
	return p.HTMLFn(ctx, selector)
}

func (p *Page) ClickText(ctx context.Context, selector, text string) error {
	return p.ClickTextFn(ctx, selector, text)
}

func (p *Page) WaitIdle(ctx context.Context) error {
	return p.WaitIdleFn(ctx)
}

func (p *Page) CaptureResponse(ctx context.Context, pageURL, urlPart, method string) (*nezamdoc.Exchange, error) {
	return p.CaptureResponseFn(ctx, pageURL, urlPart, method)
}

func (p *Page) Close() error {
	return p.CloseFn()
}
