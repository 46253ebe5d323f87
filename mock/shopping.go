package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ShoppingIndex = (*ShoppingIndex)(nil)

// ShoppingIndex is a mock implementation of dealscan.ShoppingIndex.
type ShoppingIndex struct {
	SearchFn func(ctx context.Context, query string) ([]dealscan.ShoppingResult, error)
}

func (s *ShoppingIndex) Search(ctx context.Context, query string) ([]dealscan.ShoppingResult, error) {
	return s.SearchFn(ctx, query)
}
