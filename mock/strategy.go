package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ExtractionStrategy = (*ExtractionStrategy)(nil)

// ExtractionStrategy is a mock implementation of dealscan.ExtractionStrategy.
type ExtractionStrategy struct {
	NameFn          func() string
	ExtractFieldsFn func(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error)
	HarvestImagesFn func(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error)
}

func (s *ExtractionStrategy) Name() string {
	return s.NameFn()
}

func (s *ExtractionStrategy) ExtractFields(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
	return s.ExtractFieldsFn(ctx, doc)
}

func (s *ExtractionStrategy) HarvestImages(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
	return s.HarvestImagesFn(ctx, doc, maxCount)
}
