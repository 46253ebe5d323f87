package dealscan

import (
	"context"
	"time"
)

// MaxHistoryItems caps the persisted analysis history; older entries are
// pruned as new ones arrive.
const MaxHistoryItems = 20

// HistoryItem is one persisted analysis run, newest first in listings.
type HistoryItem struct {
	ID          string          `json:"id"`
	Product     string          `json:"product"`
	ListingHash string          `json:"listingHash"`
	Result      *AnalysisResult `json:"result"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate returns an error if the history item contains invalid fields.
func (h *HistoryItem) Validate() error {
	if h.Product == "" {
		return Errorf(EINVALID, "history item product required")
	}
	if h.Result == nil {
		return Errorf(EINVALID, "history item result required")
	}
	return nil
}

// HistoryService persists analysis results.
type HistoryService interface {
	// CreateItem saves an analysis run and prunes history beyond
	// MaxHistoryItems.
	CreateItem(ctx context.Context, item *HistoryItem) error

	// FindItems returns history newest first, at most MaxHistoryItems.
	FindItems(ctx context.Context) ([]*HistoryItem, error)

	// DeleteItems clears all history.
	DeleteItems(ctx context.Context) error
}
