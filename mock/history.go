package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of dealscan.HistoryService.
type HistoryService struct {
	CreateItemFn  func(ctx context.Context, item *dealscan.HistoryItem) error
	FindItemsFn   func(ctx context.Context) ([]*dealscan.HistoryItem, error)
	DeleteItemsFn func(ctx context.Context) error
}

func (s *HistoryService) CreateItem(ctx context.Context, item *dealscan.HistoryItem) error {
	return s.CreateItemFn(ctx, item)
}

func (s *HistoryService) FindItems(ctx context.Context) ([]*dealscan.HistoryItem, error) {
	return s.FindItemsFn(ctx)
}

func (s *HistoryService) DeleteItems(ctx context.Context) error {
	return s.DeleteItemsFn(ctx)
}
