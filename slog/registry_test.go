package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/mock"
	dealslog "github.com/fwojciec/dealscan/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRegistry_GetForURL(t *testing.T) {
	t.Parallel()

	t.Run("logs detected marketplace with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		mockStrategy := &mock.ExtractionStrategy{}
		inner := &mock.StrategyRegistry{
			GetForURLFn: func(pageURL string) dealscan.ExtractionStrategy {
				return mockStrategy
			},
		}
		detector := &mock.MarketplaceDetector{
			DetectFn: func(pageURL string) dealscan.Marketplace {
				return dealscan.MarketplaceFacebook
			},
		}

		registry := dealslog.NewLoggingRegistry(inner, detector, logger)
		strategy := registry.GetForURL("https://www.facebook.com/marketplace/item/1")

		assert.Equal(t, mockStrategy, strategy)
		output := buf.String()
		assert.Contains(t, output, "marketplace detection")
		assert.Contains(t, output, "marketplace=facebook")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs unknown marketplace", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		mockStrategy := &mock.ExtractionStrategy{}
		inner := &mock.StrategyRegistry{
			GetForURLFn: func(pageURL string) dealscan.ExtractionStrategy {
				return mockStrategy
			},
		}
		detector := &mock.MarketplaceDetector{
			DetectFn: func(pageURL string) dealscan.Marketplace {
				return dealscan.MarketplaceUnknown
			},
		}

		registry := dealslog.NewLoggingRegistry(inner, detector, logger)
		registry.GetForURL("https://example.com/listing/1")

		assert.Contains(t, buf.String(), "marketplace=(unknown)")
	})

	t.Run("delegates Get, Register and List", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		mockStrategy := &mock.ExtractionStrategy{}
		var registered dealscan.Marketplace
		inner := &mock.StrategyRegistry{
			GetFn: func(marketplace dealscan.Marketplace) dealscan.ExtractionStrategy {
				return mockStrategy
			},
			RegisterFn: func(marketplace dealscan.Marketplace, strategy dealscan.ExtractionStrategy) {
				registered = marketplace
			},
			ListFn: func() []dealscan.Marketplace {
				return []dealscan.Marketplace{dealscan.MarketplaceCraigslist}
			},
		}
		detector := &mock.MarketplaceDetector{}

		registry := dealslog.NewLoggingRegistry(inner, detector, logger)

		assert.Equal(t, mockStrategy, registry.Get(dealscan.MarketplaceFacebook))
		registry.Register(dealscan.MarketplaceOfferUp, mockStrategy)
		assert.Equal(t, dealscan.MarketplaceOfferUp, registered)
		assert.Equal(t, []dealscan.Marketplace{dealscan.MarketplaceCraigslist}, registry.List())
	})
}
