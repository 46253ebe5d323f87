package dealscan

import "context"

// Marketplace identifies a known marketplace site.
type Marketplace string

// Marketplace constants. MarketplaceUnknown routes to the generic strategy.
const (
	MarketplaceFacebook   Marketplace = "facebook"
	MarketplaceCraigslist Marketplace = "craigslist"
	MarketplaceOfferUp    Marketplace = "offerup"
	MarketplaceUnknown    Marketplace = ""
)

// Fields holds the textual extraction output of a strategy.
// Absent fields are empty strings, never an error.
type Fields struct {
	Title       string
	Price       string
	Description string
}

// MarketplaceDetector identifies the marketplace from a page URL.
type MarketplaceDetector interface {
	// Detect returns the marketplace for the URL's hostname.
	// Returns MarketplaceUnknown when no known marketplace matches.
	Detect(pageURL string) Marketplace
}

// ExtractionStrategy extracts listing fields and harvests images from a
// marketplace page. Implementations apply ordered fallback heuristics and
// never fail on missing data; extraction degrades to empty fields.
type ExtractionStrategy interface {
	// Name returns the strategy's identifier.
	Name() string

	// ExtractFields returns the best-effort title, price and description.
	ExtractFields(ctx context.Context, doc Document) (Fields, error)

	// HarvestImages collects up to maxCount admitted listing images.
	// A failure for one image degrades to omission, never aborts the batch.
	HarvestImages(ctx context.Context, doc Document, maxCount int) ([]ImageRef, error)
}

// StrategyRegistry manages marketplace-specific extraction strategies and
// dispatches a page to the right one, falling back to a generic strategy
// when the marketplace is unknown or has no registered strategy.
type StrategyRegistry interface {
	// Get returns the strategy registered for a marketplace, or nil.
	Get(marketplace Marketplace) ExtractionStrategy

	// GetForURL detects the marketplace from the page URL and returns the
	// appropriate strategy, falling back to the generic strategy.
	GetForURL(pageURL string) ExtractionStrategy

	// Register adds a strategy for a marketplace, replacing any existing one.
	Register(marketplace Marketplace, strategy ExtractionStrategy)

	// List returns all registered marketplaces.
	List() []Marketplace
}
