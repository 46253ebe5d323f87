package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.ExtractionStrategy = (*CraigslistStrategy)(nil)

// craigslistBoilerplate is injected into every posting body.
const craigslistBoilerplate = "QR Code Link to This Post"

// craigslistThumbRe matches thumbnail-size path segments in image URLs.
var craigslistThumbRe = regexp.MustCompile(`50x50c|300x300|600x450`)

// CraigslistStrategy extracts listings from Craigslist posting pages.
// Craigslist has a stable, semantic structure, so fields come from known
// selectors and images stay remote URLs (the image host permits
// hotlinking).
type CraigslistStrategy struct{}

// NewCraigslistStrategy creates a new CraigslistStrategy.
func NewCraigslistStrategy() *CraigslistStrategy {
	return &CraigslistStrategy{}
}

// Name returns the strategy's identifier.
func (s *CraigslistStrategy) Name() string {
	return "craigslist"
}

// ExtractFields reads the posting's designated containers.
func (s *CraigslistStrategy) ExtractFields(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
	gdoc, err := parseHTML(ctx, doc)
	if err != nil {
		return dealscan.Fields{}, nil
	}

	var fields dealscan.Fields

	if title, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, "#titletextonly, .postingtitle"),
	); ok {
		fields.Title = title.Value
	}

	if price, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, ".price"),
	); ok {
		fields.Price = price.Value
	}

	if desc, ok := dealscan.FirstMatch(ctx, doc,
		selectorText(gdoc, "#postingbody, .postingbody"),
	); ok {
		fields.Description = strings.TrimSpace(strings.ReplaceAll(desc.Value, craigslistBoilerplate, ""))
	}

	return fields, nil
}

// HarvestImages collects gallery images as remote URLs, upgrading known
// thumbnail path segments to the 1200x900 variant before deduplication.
func (s *CraigslistStrategy) HarvestImages(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
	candidates, err := doc.Images(ctx, ".slide img, .thumb img, #thumbs img")
	if err != nil {
		return nil, nil
	}
	rewrite := func(u string) string {
		return craigslistThumbRe.ReplaceAllString(u, "1200x900")
	}
	return harvestDirect(candidates, nil, rewrite, clampMaxCount(maxCount)), nil
}
