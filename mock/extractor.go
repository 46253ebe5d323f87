package mock

import (
	"github.com/fwojciec/dealscan"
)

var _ dealscan.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of dealscan.ContentExtractor.
type ContentExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
