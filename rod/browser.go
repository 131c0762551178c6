// Package rod implements browser automation using the go-rod library.
// It provides the single headless Chrome page the harvesting pipeline
// drives; portals rendered entirely by JavaScript cannot be read with a
// plain HTTP client.
package rod

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Browser owns a launched Chrome process and its automation connection.
// Close must be called when the Browser is no longer needed.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// BrowserOption configures a Browser.
type BrowserOption func(*browserConfig)

type browserConfig struct {
	headless bool
}

// WithHeadless controls whether the browser runs headless. Defaults to
// true; a visible browser is useful when debugging selector changes on a
// portal.
func WithHeadless(headless bool) BrowserOption {
	return func(c *browserConfig) {
		c.headless = headless
	}
}

// NewBrowser launches a Chrome browser and connects to it. The launcher
// finds an installed Chrome/Chromium or downloads one.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	cfg := browserConfig{headless: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(cfg.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Browser{browser: browser, launcher: lnchr}, nil
}

// NewPage opens a blank page. If locale is non-empty it overrides the
// browser locale for the page, e.g. "ar-SA" so portals serve their
// Arabic rendering.
func (b *Browser) NewPage(locale string) (*Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if locale != "" {
		if err := (proto.EmulationSetLocaleOverride{Locale: locale}).Call(page); err != nil {
			_ = page.Close()
			return nil, fmt.Errorf("setting locale %q: %w", locale, err)
		}
	}

	return &Page{page: page}, nil
}

// Close releases browser resources. The launched Chrome process is
// killed even if closing the connection fails.
func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}
