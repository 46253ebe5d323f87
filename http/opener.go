package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/goquery"
)

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 10 * time.Second

// userAgent identifies the fetch as a regular browser; some marketplaces
// serve stripped pages to unknown clients.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// Ensure StaticOpener implements dealscan.DocumentOpener at compile time.
var _ dealscan.DocumentOpener = (*StaticOpener)(nil)

// StaticOpener fetches pages over plain HTTP and returns static
// documents. It does not execute JavaScript: extraction heuristics that
// need rendering degrade, and proxy-mode image harvesting yields nothing.
// Suitable for server-rendered sites like Craigslist.
type StaticOpener struct {
	timeout time.Duration
	client  *http.Client
}

// OpenerOption configures a StaticOpener.
type OpenerOption func(*StaticOpener)

// WithFetchTimeout sets the timeout for page fetches.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) OpenerOption {
	return func(o *StaticOpener) {
		o.timeout = d
	}
}

// NewStaticOpener creates a new StaticOpener.
func NewStaticOpener(opts ...OpenerOption) *StaticOpener {
	o := &StaticOpener{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.client = &http.Client{
		Timeout: o.timeout,
	}

	return o
}

// Open fetches the URL and parses the response into a static document.
// Redirects are followed; the document carries the final URL so routing
// sees the page that was actually served.
func (o *StaticOpener) Open(ctx context.Context, url string) (dealscan.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	resolved := url
	if resp.Request != nil && resp.Request.URL != nil {
		resolved = resp.Request.URL.String()
	}

	return goquery.NewStaticDocument(string(body), resolved)
}

// Close releases resources. The shared HTTP client needs no explicit
// cleanup.
func (o *StaticOpener) Close() error {
	return nil
}
