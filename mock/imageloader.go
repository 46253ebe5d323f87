package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ImageLoader = (*ImageLoader)(nil)

// ImageLoader is a mock implementation of dealscan.ImageLoader.
type ImageLoader struct {
	LoadFn func(ctx context.Context, ref dealscan.ImageRef, highFidelity bool) ([]byte, string, error)
}

func (l *ImageLoader) Load(ctx context.Context, ref dealscan.ImageRef, highFidelity bool) ([]byte, string, error) {
	return l.LoadFn(ctx, ref, highFidelity)
}
