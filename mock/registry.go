package mock

import (
	"github.com/fwojciec/dealscan"
)

var _ dealscan.StrategyRegistry = (*StrategyRegistry)(nil)

// StrategyRegistry is a mock implementation of dealscan.StrategyRegistry.
type StrategyRegistry struct {
	GetFn       func(marketplace dealscan.Marketplace) dealscan.ExtractionStrategy
	GetForURLFn func(pageURL string) dealscan.ExtractionStrategy
	RegisterFn  func(marketplace dealscan.Marketplace, strategy dealscan.ExtractionStrategy)
	ListFn      func() []dealscan.Marketplace
}

func (r *StrategyRegistry) Get(marketplace dealscan.Marketplace) dealscan.ExtractionStrategy {
	return r.GetFn(marketplace)
}

func (r *StrategyRegistry) GetForURL(pageURL string) dealscan.ExtractionStrategy {
	return r.GetForURLFn(pageURL)
}

func (r *StrategyRegistry) Register(marketplace dealscan.Marketplace, strategy dealscan.ExtractionStrategy) {
	r.RegisterFn(marketplace, strategy)
}

func (r *StrategyRegistry) List() []dealscan.Marketplace {
	return r.ListFn()
}

var _ dealscan.MarketplaceDetector = (*MarketplaceDetector)(nil)

// MarketplaceDetector is a mock implementation of dealscan.MarketplaceDetector.
type MarketplaceDetector struct {
	DetectFn func(pageURL string) dealscan.Marketplace
}

func (d *MarketplaceDetector) Detect(pageURL string) dealscan.Marketplace {
	return d.DetectFn(pageURL)
}
