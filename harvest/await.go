package harvest

import (
	"context"
	"time"

	"github.com/rashidq/nezamdoc"
)

const (
	awaitInitialDelay = 50 * time.Millisecond
	awaitMaxDelay     = 500 * time.Millisecond
)

// AwaitText polls until the element matching selector has non-empty
// visible text, giving late-rendering content a bounded window to
// appear. It returns as soon as text shows up; when the window closes
// first it returns anyway and leaves the missing-content decision to
// the caller's extraction checks. Polling replaces a fixed sleep so
// fast pages proceed immediately and slow ones get the whole window.
func AwaitText(ctx context.Context, page nezamdoc.Page, selector string, window time.Duration) {
	deadline := time.Now().Add(window)
	delay := awaitInitialDelay

	for {
		if text, err := page.Text(ctx, selector); err == nil && text != "" {
			return
		}
		remaining := time.Until(deadline)
		if remaining <= 0 || ctx.Err() != nil {
			return
		}
		if delay > remaining {
			delay = remaining
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		if delay *= 2; delay > awaitMaxDelay {
			delay = awaitMaxDelay
		}
	}
}
