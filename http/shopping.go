// Package http provides the outbound HTTP implementations: the shopping
// search client, the image loader, and the static document opener used
// when no rendering browser is available.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/fwojciec/dealscan"
)

// DefaultSearchTimeout is the default timeout for shopping search requests.
const DefaultSearchTimeout = 10 * time.Second

// DefaultSearchResults is the number of results requested per search.
const DefaultSearchResults = 20

const defaultShoppingBaseURL = "https://serpapi.com/search.json"

// Ensure ShoppingIndex implements dealscan.ShoppingIndex at compile time.
var _ dealscan.ShoppingIndex = (*ShoppingIndex)(nil)

// ShoppingIndex queries the SerpAPI Google Shopping endpoint.
// ShoppingIndex is safe for concurrent use; a rate limiter spaces
// requests so parallel lookups stay inside the provider's quota.
type ShoppingIndex struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	client  *http.Client
}

// ShoppingOption configures a ShoppingIndex.
type ShoppingOption func(*ShoppingIndex)

// WithSearchTimeout sets the timeout for search requests.
// Defaults to DefaultSearchTimeout.
func WithSearchTimeout(d time.Duration) ShoppingOption {
	return func(s *ShoppingIndex) {
		s.timeout = d
	}
}

// WithSearchBaseURL overrides the endpoint. Used in tests.
func WithSearchBaseURL(u string) ShoppingOption {
	return func(s *ShoppingIndex) {
		s.baseURL = u
	}
}

// WithSearchRateLimit sets the request rate limit.
// Defaults to one request per second with a burst of two, which lets the
// pipeline's paired lookups start together.
func WithSearchRateLimit(limiter *rate.Limiter) ShoppingOption {
	return func(s *ShoppingIndex) {
		s.limiter = limiter
	}
}

// NewShoppingIndex creates a new ShoppingIndex.
func NewShoppingIndex(apiKey string, opts ...ShoppingOption) *ShoppingIndex {
	s := &ShoppingIndex{
		apiKey:  apiKey,
		baseURL: defaultShoppingBaseURL,
		timeout: DefaultSearchTimeout,
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// searchResponse is the subset of the SerpAPI payload the index reads.
type searchResponse struct {
	ShoppingResults []dealscan.ShoppingResult `json:"shopping_results"`
	Error           string                    `json:"error"`
}

// Search runs a Google Shopping query and returns the raw results.
// An empty result set is a normal state, not an error.
func (s *ShoppingIndex) Search(ctx context.Context, query string) ([]dealscan.ShoppingResult, error) {
	if s.apiKey == "" {
		return nil, dealscan.Errorf(dealscan.EUNAUTHORIZED, "shopping search API key required")
	}
	if query == "" {
		return nil, dealscan.Errorf(dealscan.EINVALID, "search query required")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", fmt.Sprintf("%d", DefaultSearchResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, dealscan.Errorf(dealscan.EUNAUTHORIZED, "shopping search rejected the API key")
	case http.StatusTooManyRequests:
		return nil, dealscan.Errorf(dealscan.ERATELIMIT, "shopping search rate limit exceeded")
	default:
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "shopping search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "invalid shopping search response: %v", err)
	}
	if decoded.Error != "" {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "shopping search failed: %s", decoded.Error)
	}

	return decoded.ShoppingResults, nil
}
