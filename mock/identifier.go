package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.Identifier = (*Identifier)(nil)

// Identifier is a mock implementation of dealscan.Identifier.
type Identifier struct {
	IdentifyFn func(ctx context.Context, listing *dealscan.Listing) (string, error)
}

func (i *Identifier) Identify(ctx context.Context, listing *dealscan.Listing) (string, error) {
	return i.IdentifyFn(ctx, listing)
}
