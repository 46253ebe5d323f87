package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/dealscan"
)

// Ensure LoggingRegistry implements dealscan.StrategyRegistry.
var _ dealscan.StrategyRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a StrategyRegistry with debug logging for marketplace routing.
type LoggingRegistry struct {
	next     dealscan.StrategyRegistry
	detector dealscan.MarketplaceDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next dealscan.StrategyRegistry, detector dealscan.MarketplaceDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(marketplace dealscan.Marketplace) dealscan.ExtractionStrategy {
	return r.next.Get(marketplace)
}

// GetForURL detects the marketplace, logs it, and returns the appropriate strategy.
func (r *LoggingRegistry) GetForURL(pageURL string) dealscan.ExtractionStrategy {
	begin := time.Now()
	marketplace := r.detector.Detect(pageURL)
	marketplaceName := string(marketplace)
	if marketplace == dealscan.MarketplaceUnknown {
		marketplaceName = "(unknown)"
	}
	r.logger.Info("marketplace detection",
		"marketplace", marketplaceName,
		"duration", time.Since(begin),
	)
	return r.next.GetForURL(pageURL)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(marketplace dealscan.Marketplace, strategy dealscan.ExtractionStrategy) {
	r.next.Register(marketplace, strategy)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []dealscan.Marketplace {
	return r.next.List()
}
