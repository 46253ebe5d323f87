package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/dealscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ dealscan.HistoryService = (*HistoryService)(nil)

// HistoryService implements dealscan.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateItem saves an analysis run. History beyond dealscan.MaxHistoryItems
// is pruned, oldest first.
func (s *HistoryService) CreateItem(ctx context.Context, item *dealscan.HistoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	item.ID = uuid.New().String()
	item.CreatedAt = time.Now().UTC()

	result, err := json.Marshal(item.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, product, listing_hash, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, item.ID, item.Product, item.ListingHash, string(result),
		item.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	// Prune entries past the cap. Ties on created_at break on id so the
	// prune is deterministic.
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM history
		WHERE id NOT IN (
			SELECT id FROM history
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`, dealscan.MaxHistoryItems)

	return err
}

// FindItems retrieves history newest first, at most dealscan.MaxHistoryItems.
func (s *HistoryService) FindItems(ctx context.Context) ([]*dealscan.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product, listing_hash, result, created_at
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, dealscan.MaxHistoryItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*dealscan.HistoryItem
	for rows.Next() {
		var item dealscan.HistoryItem
		var result, createdAt string

		if err := rows.Scan(&item.ID, &item.Product, &item.ListingHash, &result, &createdAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(result), &item.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}

		item.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

// DeleteItems clears all history.
func (s *HistoryService) DeleteItems(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}
