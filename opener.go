package dealscan

import "context"

// DocumentOpener navigates to a listing URL and returns a live Document.
// Implementations own the underlying resources (a browser, a page pool);
// Close releases them.
type DocumentOpener interface {
	Open(ctx context.Context, url string) (Document, error)
	Close() error
}
