// Package rod implements a Fetcher that renders pages in headless
// Chrome, for sites whose content only exists after JavaScript runs.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mstolarski/siteqa"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 60 * time.Second

var _ siteqa.Fetcher = (*Fetcher)(nil)
var _ siteqa.Serialized = (*Fetcher)(nil)

// closeSelectors locate dismiss buttons of cookie walls, newsletter
// modals, and similar overlays that would otherwise sit in the rendered
// HTML. Ordered from most to least specific.
var closeSelectors = []string{
	`button[aria-label*="close" i]`,
	`button[aria-label*="dismiss" i]`,
	`[aria-label="Close"]`,
	`button[data-dismiss="modal"]`,
	`[data-action="close"]`,
	`.modal-close`,
	`button.close`,
	`a.close`,
	`#onetrust-accept-btn-handler`,
	`.cookie-accept`,
	`button[id*="accept" i]`,
	`button[id*="consent" i]`,
	`button[class*="close" i]`,
}

// overlaySelectors locate modal backdrops that close on click.
var overlaySelectors = []string{
	`.modal-backdrop`,
	`[class*="backdrop"]`,
	`.overlay`,
}

// scrollScript walks the viewport down the page in 100px steps to
// trigger lazy-loaded content, resolving once the full height has been
// covered.
const scrollScript = `async () => {
	await new Promise((resolve) => {
		let total = 0;
		const distance = 100;
		const timer = setInterval(() => {
			const height = document.body.scrollHeight;
			window.scrollBy(0, distance);
			total += distance;
			if (total >= height) {
				clearInterval(timer);
				resolve();
			}
		}, 100);
	});
}`

// Fetcher retrieves fully rendered HTML through a managed headless
// Chrome browser. Before serializing the DOM it dismisses overlay chrome
// and scrolls through the page so lazy-loaded content is present.
//
// The fetcher owns one shared browser context, so it reports itself as
// serialized and callers must not fetch concurrently through it.
type Fetcher struct {
	manager         *BrowserManager
	timeout         time.Duration
	dismissOverlays bool
	scrollPage      bool
	closed          atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithoutOverlayDismissal disables clicking away cookie walls and modals.
func WithoutOverlayDismissal() Option {
	return func(f *Fetcher) {
		f.dismissOverlays = false
	}
}

// WithoutScroll disables the lazy-load scroll pass.
func WithoutScroll() Option {
	return func(f *Fetcher) {
		f.scrollPage = false
	}
}

// NewFetcher launches a managed headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:         DefaultFetchTimeout,
		dismissOverlays: true,
		scrollPage:      true,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Serialized implements siteqa.Serialized.
func (f *Fetcher) Serialized() bool { return true }

// Fetch implements siteqa.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", siteqa.Errorf(siteqa.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.dismissOverlays {
		dismissPageOverlays(page)
	}
	if f.scrollPage {
		scrollThrough(page)
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close shuts down the browser. Safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// dismissPageOverlays tries Escape first, then the close-button
// selectors, then clicking the backdrop. Each step is best effort; a
// page with no overlays loses nothing.
func dismissPageOverlays(page *rod.Page) {
	_ = page.Keyboard.Press(input.Escape)

	for _, selector := range closeSelectors {
		els, err := page.Elements(selector)
		if err != nil || len(els) == 0 {
			continue
		}
		if err := els.First().Click(proto.InputMouseButtonLeft, 1); err == nil {
			break
		}
	}

	for _, selector := range overlaySelectors {
		els, err := page.Elements(selector)
		if err != nil || len(els) == 0 {
			continue
		}
		_ = els.First().Click(proto.InputMouseButtonLeft, 1)
	}
}

// scrollThrough runs the lazy-load scroll pass and returns the viewport
// to the top so the serialized DOM matches the initial view.
func scrollThrough(page *rod.Page) {
	if _, err := page.Eval(scrollScript); err != nil {
		return
	}
	_, _ = page.Eval(`() => window.scrollTo(0, 0)`)
}
