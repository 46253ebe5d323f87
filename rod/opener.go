package rod

import (
	"context"

	"github.com/go-rod/rod/lib/proto"

	"github.com/fwojciec/dealscan"
)

// Ensure Opener implements dealscan.DocumentOpener at compile time.
var _ dealscan.DocumentOpener = (*Opener)(nil)

// Opener navigates to listing URLs in a headless browser and returns
// rendered documents. Opener is safe for concurrent use.
type Opener struct {
	manager *BrowserManager
}

// NewOpener launches a headless browser. Close must be called when the
// Opener is no longer needed; closing releases every open page.
func NewOpener(opts ...ManagerOption) (*Opener, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Opener{manager: manager}, nil
}

// Open navigates to the URL, waits for the page to load, and returns the
// rendered document.
func (o *Opener) Open(ctx context.Context, url string) (dealscan.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := o.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "opening page: %v", err)
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		_ = page.Close()
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "waiting for %s: %v", url, err)
	}

	o.manager.IncrementPageCount()

	// Follow redirects: routing decisions use the final URL.
	resolved := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		resolved = info.URL
	}

	return &RenderedDocument{page: page, url: resolved}, nil
}

// Close releases the browser and every page opened through this Opener.
func (o *Opener) Close() error {
	return o.manager.Close()
}
