package sqlite

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/fwojciec/dealscan"
)

// Compile-time interface verification.
var _ dealscan.SettingsService = (*SettingsService)(nil)

// SettingsService implements dealscan.SettingsService using SQLite.
type SettingsService struct {
	db *DB
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns the value for key.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", dealscan.Errorf(dealscan.ENOTFOUND, "setting not found")
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores the value for key, replacing any existing value.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return dealscan.Errorf(dealscan.EINVALID, "setting key required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Increment adds delta to the integer counter stored at key and returns
// the new value. A missing counter starts at zero; a non-numeric value
// resets to delta.
func (s *SettingsService) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	if key == "" {
		return 0, dealscan.Errorf(dealscan.EINVALID, "setting key required")
	}

	current, err := s.Get(ctx, key)
	if err != nil && dealscan.ErrorCode(err) != dealscan.ENOTFOUND {
		return 0, err
	}

	// Treat a missing or malformed value as zero.
	n, _ := strconv.ParseInt(current, 10, 64)
	n += delta

	if err := s.Set(ctx, key, strconv.FormatInt(n, 10)); err != nil {
		return 0, err
	}
	return n, nil
}
