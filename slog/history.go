package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dealscan"
)

// Ensure LoggingHistoryService implements dealscan.HistoryService.
var _ dealscan.HistoryService = (*LoggingHistoryService)(nil)

// LoggingHistoryService wraps a HistoryService with debug logging.
type LoggingHistoryService struct {
	next   dealscan.HistoryService
	logger *slog.Logger
}

// NewLoggingHistoryService creates a new LoggingHistoryService.
func NewLoggingHistoryService(next dealscan.HistoryService, logger *slog.Logger) *LoggingHistoryService {
	return &LoggingHistoryService{next: next, logger: logger}
}

// CreateItem delegates to the wrapped service and logs the operation.
func (s *LoggingHistoryService) CreateItem(ctx context.Context, item *dealscan.HistoryItem) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("history create",
			"product", item.Product,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateItem(ctx, item)
}

// FindItems delegates to the wrapped service and logs the operation.
func (s *LoggingHistoryService) FindItems(ctx context.Context) (items []*dealscan.HistoryItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("history list",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindItems(ctx)
}

// DeleteItems delegates to the wrapped service and logs the operation.
func (s *LoggingHistoryService) DeleteItems(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("history clear",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteItems(ctx)
}
