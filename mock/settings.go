package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of dealscan.SettingsService.
type SettingsService struct {
	GetFn       func(ctx context.Context, key string) (string, error)
	SetFn       func(ctx context.Context, key, value string) error
	IncrementFn func(ctx context.Context, key string, delta int64) (int64, error)
}

func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	return s.GetFn(ctx, key)
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.SetFn(ctx, key, value)
}

func (s *SettingsService) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	return s.IncrementFn(ctx, key, delta)
}
