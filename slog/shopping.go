package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dealscan"
)

// Ensure LoggingShoppingIndex implements dealscan.ShoppingIndex.
var _ dealscan.ShoppingIndex = (*LoggingShoppingIndex)(nil)

// LoggingShoppingIndex wraps a ShoppingIndex with debug logging.
type LoggingShoppingIndex struct {
	next   dealscan.ShoppingIndex
	logger *slog.Logger
}

// NewLoggingShoppingIndex creates a new LoggingShoppingIndex.
func NewLoggingShoppingIndex(next dealscan.ShoppingIndex, logger *slog.Logger) *LoggingShoppingIndex {
	return &LoggingShoppingIndex{next: next, logger: logger}
}

// Search delegates to the wrapped index and logs the operation.
func (s *LoggingShoppingIndex) Search(ctx context.Context, query string) (results []dealscan.ShoppingResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("shopping search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
