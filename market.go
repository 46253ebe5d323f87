package dealscan

import (
	"context"
	"strings"
)

// ShoppingResult is one entry returned by a shopping-search lookup.
type ShoppingResult struct {
	Price  string `json:"price"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link"`
}

// RetailSignal is the new-retail market signal: the first shopping result
// that survived the retail filter.
type RetailSignal struct {
	Price  string `json:"price"`
	Link   string `json:"link"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// UsedItem is one used-market comparable.
type UsedItem struct {
	Price  string `json:"price"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// UsedMarket is the used-market signal: the comparables collected for a query.
type UsedMarket struct {
	Query string     `json:"query"`
	Items []UsedItem `json:"items"`
}

// ShoppingIndex queries an external shopping-search endpoint.
// Absence of results is a normal state, not an error.
type ShoppingIndex interface {
	Search(ctx context.Context, query string) ([]ShoppingResult, error)
}

// marketplaceSources are shopping-result sources that sell used or
// peer-to-peer goods; their prices are not retail signals.
var marketplaceSources = []string{
	"facebook", "ebay", "craigslist", "offerup", "mercari",
}

// usedMarkers in a result title disqualify it as a new-retail result.
var usedMarkers = []string{"used", "pre-owned", "refurbished"}

// FilterRetail returns the first shopping result that looks like a genuine
// new-retail offer: not from a marketplace source and not marked as used.
// Google redirect links are discarded in favor of a placeholder. Returns
// nil when no result qualifies.
func FilterRetail(results []ShoppingResult) *RetailSignal {
	for _, r := range results {
		source := strings.ToLower(r.Source)
		title := strings.ToLower(r.Title)

		if containsAny(source, marketplaceSources) || containsAny(title, usedMarkers) {
			continue
		}

		link := r.Link
		if link == "" || strings.Contains(link, "google.com") {
			link = "#"
		}

		price := r.Price
		if price == "" {
			price = "N/A"
		}

		return &RetailSignal{
			Price:  price,
			Link:   link,
			Title:  r.Title,
			Source: r.Source,
		}
	}
	return nil
}

// CollectUsed converts shopping results for a used-market query into a
// UsedMarket signal, keeping only priced entries. Returns nil when nothing
// was priced.
func CollectUsed(query string, results []ShoppingResult) *UsedMarket {
	var items []UsedItem
	for _, r := range results {
		if r.Price == "" {
			continue
		}
		items = append(items, UsedItem{Price: r.Price, Title: r.Title, Source: r.Source})
	}
	if len(items) == 0 {
		return nil
	}
	return &UsedMarket{Query: query, Items: items}
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
