package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.DocumentOpener = (*DocumentOpener)(nil)

// DocumentOpener is a mock implementation of dealscan.DocumentOpener.
type DocumentOpener struct {
	OpenFn  func(ctx context.Context, url string) (dealscan.Document, error)
	CloseFn func() error
}

func (o *DocumentOpener) Open(ctx context.Context, url string) (dealscan.Document, error) {
	return o.OpenFn(ctx, url)
}

func (o *DocumentOpener) Close() error {
	return o.CloseFn()
}
