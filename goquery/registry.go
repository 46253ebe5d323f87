package goquery

import "github.com/fwojciec/dealscan"

var _ dealscan.StrategyRegistry = (*Registry)(nil)

// Registry manages marketplace-specific extraction strategies and routes
// pages to them by originating domain. It uses a MarketplaceDetector to
// identify the marketplace and returns the appropriate strategy, falling
// back to the generic strategy when the marketplace is unknown or has no
// registered strategy.
type Registry struct {
	detector   dealscan.MarketplaceDetector
	fallback   dealscan.ExtractionStrategy
	strategies map[dealscan.Marketplace]dealscan.ExtractionStrategy
}

// NewRegistry creates a new Registry with the given detector and fallback
// strategy. The fallback is used when GetForURL cannot find a specific
// strategy for the detected marketplace.
func NewRegistry(detector dealscan.MarketplaceDetector, fallback dealscan.ExtractionStrategy) *Registry {
	return &Registry{
		detector:   detector,
		fallback:   fallback,
		strategies: make(map[dealscan.Marketplace]dealscan.ExtractionStrategy),
	}
}

// Get returns the strategy for a specific marketplace.
// Returns nil if no strategy is registered for the marketplace.
func (r *Registry) Get(marketplace dealscan.Marketplace) dealscan.ExtractionStrategy {
	return r.strategies[marketplace]
}

// GetForURL detects the marketplace from the page URL and returns the
// appropriate strategy. Falls back to the fallback strategy if the
// marketplace is unknown or no strategy is registered for it.
func (r *Registry) GetForURL(pageURL string) dealscan.ExtractionStrategy {
	marketplace := r.detector.Detect(pageURL)
	if strategy, ok := r.strategies[marketplace]; ok {
		return strategy
	}
	return r.fallback
}

// Register adds a strategy for a marketplace.
// If a strategy is already registered for the marketplace, it is replaced.
func (r *Registry) Register(marketplace dealscan.Marketplace, strategy dealscan.ExtractionStrategy) {
	r.strategies[marketplace] = strategy
}

// List returns all registered marketplaces.
func (r *Registry) List() []dealscan.Marketplace {
	marketplaces := make([]dealscan.Marketplace, 0, len(r.strategies))
	for m := range r.strategies {
		marketplaces = append(marketplaces, m)
	}
	return marketplaces
}
