package goquery

import (
	"context"
	"strings"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ExtractionStrategy = (*GenericStrategy)(nil)

// minGenericParagraphLen is the shortest paragraph worth keeping as a
// fallback description.
const minGenericParagraphLen = 50

// GenericStrategy extracts listings from pages on unrecognized sites. It
// has no structural knowledge, so every field goes through the full
// heuristic cascade, and the description comes from a boilerplate-removing
// content extractor before falling back to line filters.
type GenericStrategy struct {
	extractor dealscan.ContentExtractor
}

// NewGenericStrategy creates a new GenericStrategy. extractor may be nil,
// in which case descriptions come from line filters alone.
func NewGenericStrategy(extractor dealscan.ContentExtractor) *GenericStrategy {
	return &GenericStrategy{extractor: extractor}
}

// Name returns the strategy's identifier.
func (s *GenericStrategy) Name() string {
	return "generic"
}

// ExtractFields applies the full heuristic cascade for each field.
func (s *GenericStrategy) ExtractFields(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
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
		metaTitle(gdoc, `meta[name="twitter:title"]`),
		headingTitle(gdoc, "h1"),
		prominentTitle("h1, h2, span, div"),
		lineScanTitle(lines),
	); ok {
		fields.Title = title.Value
	}

	if price, ok := dealscan.FirstMatch(ctx, doc,
		metaPrice(gdoc, `meta[property="product:price:amount"], meta[property="og:price:amount"], meta[itemprop="price"]`),
		prominentPrice("span, div, b, strong"),
		titleAreaPrice(text),
		anyPrice("span, div, b, strong"),
	); ok {
		fields.Price = price.Value
	}

	fields.Description = s.description(ctx, doc, lines, fields.Title, fields.Price)

	return fields, nil
}

// description prefers main-content extraction, then filtered visible lines,
// then the first substantial paragraph of visible text.
func (s *GenericStrategy) description(ctx context.Context, doc dealscan.Document, lines []string, title, price string) string {
	if s.extractor != nil {
		if rawHTML, err := doc.HTML(ctx); err == nil {
			if content, err := s.extractor.ExtractText(rawHTML); err == nil {
				contentLines := dealscan.SplitVisibleLines(content)
				if desc := dealscan.AssembleDescription(contentLines, title, price); desc != "" {
					return desc
				}
			}
		}
	}

	if desc := dealscan.AssembleDescription(lines, title, price); desc != "" {
		return desc
	}

	for _, line := range lines {
		if len(line) >= minGenericParagraphLen && !dealscan.IsUIChrome(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// HarvestImages collects every admitted image on the page as remote URLs.
func (s *GenericStrategy) HarvestImages(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
	candidates, err := doc.Images(ctx, "img")
	if err != nil {
		return nil, nil
	}
	return harvestDirect(candidates, []string{"logo", "icon", "avatar", "sprite"}, nil, clampMaxCount(maxCount)), nil
}
