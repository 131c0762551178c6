package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/rashidq/nezamdoc"
)

// Ensure LoggingPage implements nezamdoc.Page.
var _ nezamdoc.Page = (*LoggingPage)(nil)

// LoggingPage wraps a Page with debug logging. Page operations are
// fine-grained, so they log at debug level rather than info.
type LoggingPage struct {
	next   nezamdoc.Page
	logger *slog.Logger
}

// NewLoggingPage creates a new LoggingPage.
func NewLoggingPage(next nezamdoc.Page, logger *slog.Logger) *LoggingPage {
	return &LoggingPage{next: next, logger: logger}
}

func (p *LoggingPage) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Navigate(ctx, url)
}

func (p *LoggingPage) WaitVisible(ctx context.Context, selector string) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("wait visible",
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.WaitVisible(ctx, selector)
}

func (p *LoggingPage) Text(ctx context.Context, selector string) (text string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("text",
			"selector", selector,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Text(ctx, selector)
}

func (p *LoggingPage) Texts(ctx context.Context, selector string) (texts []string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("texts",
			"selector", selector,
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Texts(ctx, selector)
}

func (p *LoggingPage) HTML(ctx context.Context, selector string) (html string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("html",
			"selector", selector,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.HTML(ctx, selector)
}

func (p *LoggingPage) ClickText(ctx context.Context, selector, text string) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("click text",
			"selector", selector,
			"text", text,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ClickText(ctx, selector, text)
}

func (p *LoggingPage) WaitIdle(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("wait idle",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.WaitIdle(ctx)
}

func (p *LoggingPage) CaptureResponse(ctx context.Context, pageURL, urlPart, method string) (exchange *nezamdoc.Exchange, err error) {
	defer func(begin time.Time) {
		size := 0
		if exchange != nil {
			size = len(exchange.Body)
		}
		p.logger.Debug("capture response",
			"urlPart", urlPart,
			"method", method,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.CaptureResponse(ctx, pageURL, urlPart, method)
}

// Close delegates to the wrapped page.
func (p *LoggingPage) Close() error {
	return p.next.Close()
}
