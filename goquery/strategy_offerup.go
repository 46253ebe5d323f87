package goquery

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ExtractionStrategy = (*OfferUpStrategy)(nil)

// OfferUpStrategy extracts listings from OfferUp item pages. OfferUp tags
// its item elements with data-testid attributes; plain selectors serve as
// fallbacks for markup variants. Images stay remote URLs.
type OfferUpStrategy struct{}

// NewOfferUpStrategy creates a new OfferUpStrategy.
func NewOfferUpStrategy() *OfferUpStrategy {
	return &OfferUpStrategy{}
}

// Name returns the strategy's identifier.
func (s *OfferUpStrategy) Name() string {
	return "offerup"
}

// offerUpImageExcludes are path substrings of profile imagery.
var offerUpImageExcludes = []string{"avatar", "icon"}

// ExtractFields reads the item page's tagged containers.
func (s *OfferUpStrategy) ExtractFields(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
	gdoc, err := parseHTML(ctx, doc)
	if err != nil {
		return dealscan.Fields{}, nil
	}

	var fields dealscan.Fields

	if title, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, `h1[data-testid="item-title"], h1`),
	); ok {
		fields.Title = title.Value
	}

	if price, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, `[data-testid="item-price"], .price`),
	); ok {
		fields.Price = price.Value
	}

	if desc, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, `[data-testid="item-description"], .description`),
	); ok {
		fields.Description = desc.Value
	}

	return fields, nil
}

// HarvestImages collects item photos as remote URLs.
func (s *OfferUpStrategy) HarvestImages(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
	candidates, err := doc.Images(ctx, `img[src*="images.offerup.com"], .item-image img`)
	if err != nil {
		return nil, nil
	}
	return harvestDirect(candidates, offerUpImageExcludes, nil, clampMaxCount(maxCount)), nil
}
