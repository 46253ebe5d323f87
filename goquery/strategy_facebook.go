package goquery

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ExtractionStrategy = (*FacebookStrategy)(nil)

// FacebookStrategy extracts listings from Facebook Marketplace pages.
// Facebook renders listings into unlabeled div/span soup, so every field
// is found by an ordered heuristic cascade rather than stable selectors.
// Images are harvested in proxy mode: the CDN requires an authenticated
// session, so URLs would be useless to the inference provider.
type FacebookStrategy struct{}

// NewFacebookStrategy creates a new FacebookStrategy.
func NewFacebookStrategy() *FacebookStrategy {
	return &FacebookStrategy{}
}

// Name returns the strategy's identifier.
func (s *FacebookStrategy) Name() string {
	return "facebook"
}

// facebookImageSelectors is the CDN selector cascade, most specific first.
var facebookImageSelectors = []string{
	`img[src*="scontent"]`,
	`img[src*="fbcdn"]`,
	`img[src*="facebook"]`,
}

// facebookImageExcludes are path substrings of UI imagery, never listing
// photos.
var facebookImageExcludes = []string{"emoji", "icon"}

// ExtractFields applies the full heuristic cascade for each field.
func (s *FacebookStrategy) ExtractFields(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
	gdoc, err := parseHTML(ctx, doc)
	if err != nil {
		gdoc = nil // selector heuristics degrade; text heuristics still run
	}

	text, err := doc.VisibleText(ctx)
	if err != nil {
		text = ""
	}
	lines := dealscan.SplitVisibleLines(text)

	var fields dealscan.Fields

	if title, ok := dealscan.FirstMatch(ctx, doc,
		metaTitle(gdoc, `meta[property="og:title"]`),
		headingTitle(gdoc, "h1"),
		prominentTitle("span"),
		lineScanTitle(lines),
	); ok {
		fields.Title = title.Value
	}

	if price, ok := dealscan.FirstMatch(ctx, doc,
		metaPrice(gdoc, `meta[property="product:price:amount"]`),
		prominentPrice("span"),
		titleAreaPrice(text),
		anyPrice("span"),
	); ok {
		fields.Price = price.Value
	}

	fields.Description = dealscan.AssembleDescription(lines, fields.Title, fields.Price)

	return fields, nil
}

// HarvestImages collects up to maxCount listing photos as inline payloads.
func (s *FacebookStrategy) HarvestImages(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
	candidates, err := selectImages(ctx, doc, facebookImageSelectors)
	if err != nil {
		return nil, nil // harvest degrades to no images, never fails
	}
	return harvestProxy(ctx, doc, candidates, facebookImageExcludes, clampMaxCount(maxCount)), nil
}
