package goquery_test

import (
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/goquery"
	"github.com/fwojciec/dealscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns registered strategy for marketplace", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "fallback" }}
		facebook := &mock.ExtractionStrategy{NameFn: func() string { return "facebook" }}

		registry := goquery.NewRegistry(detector, fallback)
		registry.Register(dealscan.MarketplaceFacebook, facebook)

		got := registry.Get(dealscan.MarketplaceFacebook)

		require.NotNil(t, got)
		assert.Equal(t, "facebook", got.Name())
	})

	t.Run("returns nil for unregistered marketplace", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "fallback" }}

		registry := goquery.NewRegistry(detector, fallback)

		got := registry.Get(dealscan.MarketplaceCraigslist)

		assert.Nil(t, got)
	})
}

func TestRegistry_GetForURL(t *testing.T) {
	t.Parallel()

	t.Run("returns strategy for detected marketplace", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{
			DetectFn: func(pageURL string) dealscan.Marketplace {
				return dealscan.MarketplaceCraigslist
			},
		}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "fallback" }}
		craigslist := &mock.ExtractionStrategy{NameFn: func() string { return "craigslist" }}

		registry := goquery.NewRegistry(detector, fallback)
		registry.Register(dealscan.MarketplaceCraigslist, craigslist)

		got := registry.GetForURL("https://seattle.craigslist.org/see/d/7712345678.html")

		require.NotNil(t, got)
		assert.Equal(t, "craigslist", got.Name())
	})

	t.Run("returns fallback strategy for unknown marketplace", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{
			DetectFn: func(pageURL string) dealscan.Marketplace {
				return dealscan.MarketplaceUnknown
			},
		}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "generic" }}

		registry := goquery.NewRegistry(detector, fallback)

		got := registry.GetForURL("https://example.com/listing/42")

		require.NotNil(t, got)
		assert.Equal(t, "generic", got.Name())
	})

	t.Run("returns fallback when marketplace detected but no strategy registered", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{
			DetectFn: func(pageURL string) dealscan.Marketplace {
				return dealscan.MarketplaceOfferUp
			},
		}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "generic" }}

		registry := goquery.NewRegistry(detector, fallback)

		got := registry.GetForURL("https://offerup.com/item/detail/abc-123")

		require.NotNil(t, got)
		assert.Equal(t, "generic", got.Name())
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("replaces an existing strategy", func(t *testing.T) {
		t.Parallel()

		detector := &mock.MarketplaceDetector{}
		fallback := &mock.ExtractionStrategy{NameFn: func() string { return "fallback" }}
		first := &mock.ExtractionStrategy{NameFn: func() string { return "first" }}
		second := &mock.ExtractionStrategy{NameFn: func() string { return "second" }}

		registry := goquery.NewRegistry(detector, fallback)
		registry.Register(dealscan.MarketplaceFacebook, first)
		registry.Register(dealscan.MarketplaceFacebook, second)

		got := registry.Get(dealscan.MarketplaceFacebook)

		require.NotNil(t, got)
		assert.Equal(t, "second", got.Name())
	})
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	detector := &mock.MarketplaceDetector{}
	fallback := &mock.ExtractionStrategy{NameFn: func() string { return "fallback" }}

	registry := goquery.NewRegistry(detector, fallback)
	registry.Register(dealscan.MarketplaceFacebook, &mock.ExtractionStrategy{})
	registry.Register(dealscan.MarketplaceCraigslist, &mock.ExtractionStrategy{})

	got := registry.List()

	assert.ElementsMatch(t, []dealscan.Marketplace{
		dealscan.MarketplaceFacebook,
		dealscan.MarketplaceCraigslist,
	}, got)
}
