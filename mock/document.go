package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.Document = (*Document)(nil)

// Document is a mock implementation of dealscan.Document.
type Document struct {
	URLFn          func() string
	HTMLFn         func(ctx context.Context) (string, error)
	VisibleTextFn  func(ctx context.Context) (string, error)
	TextSpansFn    func(ctx context.Context, selector string) ([]dealscan.TextSpan, error)
	ImagesFn       func(ctx context.Context, selector string) ([]dealscan.PageImage, error)
	CaptureImageFn func(ctx context.Context, url string, maxEdge int, quality float64) (string, error)
}

func (d *Document) URL() string {
	return d.URLFn()
}

func (d *Document) HTML(ctx context.Context) (string, error) {
	return d.HTMLFn(ctx)
}

func (d *Document) VisibleText(ctx context.Context) (string, error) {
	return d.VisibleTextFn(ctx)
}

func (d *Document) TextSpans(ctx context.Context, selector string) ([]dealscan.TextSpan, error) {
	return d.TextSpansFn(ctx, selector)
}

func (d *Document) Images(ctx context.Context, selector string) ([]dealscan.PageImage, error) {
	return d.ImagesFn(ctx, selector)
}

func (d *Document) CaptureImage(ctx context.Context, url string, maxEdge int, quality float64) (string, error) {
	return d.CaptureImageFn(ctx, url, maxEdge, quality)
}
