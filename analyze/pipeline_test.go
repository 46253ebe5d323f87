package analyze_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/analyze"
	"github.com/fwojciec/dealscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingDoc() *mock.Document {
	return &mock.Document{
		URLFn: func() string { return "https://www.facebook.com/marketplace/item/1" },
	}
}

func extractingRegistry(fields dealscan.Fields, images []dealscan.ImageRef) *mock.StrategyRegistry {
	strategy := &mock.ExtractionStrategy{
		NameFn: func() string { return "facebook" },
		ExtractFieldsFn: func(ctx context.Context, doc dealscan.Document) (dealscan.Fields, error) {
			return fields, nil
		},
		HarvestImagesFn: func(ctx context.Context, doc dealscan.Document, maxCount int) ([]dealscan.ImageRef, error) {
			return images, nil
		},
	}
	return &mock.StrategyRegistry{
		GetForURLFn: func(pageURL string) dealscan.ExtractionStrategy { return strategy },
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs all stages and persists the outcome", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{
			Title:       "Herman Miller Aeron Chair",
			Price:       "$450",
			Description: "Size B, some wear.",
		}

		var historyItem *dealscan.HistoryItem
		counters := map[string]int64{}
		session := &dealscan.Session{}

		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, []dealscan.ImageRef{{Kind: dealscan.ImageRemote, URL: "https://example.com/1.jpg"}}),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					assert.Equal(t, "Herman Miller Aeron Chair", listing.Title)
					return "Herman Miller Aeron Chair Size B", nil
				},
			},
			Shopping: &mock.ShoppingIndex{
				SearchFn: func(ctx context.Context, query string) ([]dealscan.ShoppingResult, error) {
					switch query {
					case "Herman Miller Aeron Chair Size B new":
						return []dealscan.ShoppingResult{
							{Price: "$1,395.00", Title: "Aeron Chair", Source: "Herman Miller", Link: "https://store.hermanmiller.com/aeron"},
						}, nil
					case "Herman Miller Aeron Chair Size B used":
						return []dealscan.ShoppingResult{
							{Price: "$520.00", Title: "Aeron Chair Size B", Source: "eBay"},
						}, nil
					default:
						t.Errorf("unexpected query %q", query)
						return nil, nil
					}
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					assert.Equal(t, "Herman Miller Aeron Chair Size B", req.Identity)
					require.NotNil(t, req.Retail)
					assert.Equal(t, "$1,395.00", req.Retail.Price)
					require.NotNil(t, req.Used)
					require.Len(t, req.Used.Items, 1)
					return &dealscan.AnalysisResult{Verdict: dealscan.VerdictStrongDeal, FinalVerdict: dealscan.ActionNegotiate}, nil
				},
			},
			History: &mock.HistoryService{
				CreateItemFn: func(ctx context.Context, item *dealscan.HistoryItem) error {
					historyItem = item
					return nil
				},
			},
			Settings: &mock.SettingsService{
				IncrementFn: func(ctx context.Context, key string, delta int64) (int64, error) {
					counters[key] += delta
					return counters[key], nil
				},
			},
			Tokens: &mock.TokenCounter{
				CountTokensFn: func(ctx context.Context, text string) (int, error) { return 42, nil },
			},
			Session: session,
		}

		result, err := pipeline.Run(context.Background(), listingDoc(), nil)

		require.NoError(t, err)
		assert.Equal(t, dealscan.VerdictStrongDeal, result.Verdict)

		require.NotNil(t, historyItem)
		assert.Equal(t, "Herman Miller Aeron Chair Size B", historyItem.Product)
		assert.NotEmpty(t, historyItem.ListingHash)
		assert.Equal(t, result, historyItem.Result)

		assert.Equal(t, int64(1), counters[dealscan.SettingAnalysisCount])
		assert.Equal(t, int64(42), counters[dealscan.SettingPromptTokens])
		assert.Equal(t, "Herman Miller Aeron Chair Size B", session.Identity())
	})

	t.Run("fails before inference when nothing was extracted", func(t *testing.T) {
		t.Parallel()

		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(dealscan.Fields{}, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					t.Fatal("identification should not run")
					return "", nil
				},
			},
		}

		_, err := pipeline.Run(context.Background(), listingDoc(), nil)

		assert.Equal(t, dealscan.EINVALID, dealscan.ErrorCode(err))
	})

	t.Run("identification failure substitutes the listing title", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{Title: "North Face Jacket", Price: "$60"}

		var warned bool
		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					return "", dealscan.Errorf(dealscan.EINTERNAL, "model unavailable")
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					assert.Equal(t, "North Face Jacket", req.Identity)
					return &dealscan.AnalysisResult{Verdict: dealscan.VerdictFairDeal}, nil
				},
			},
		}

		progress := func(event analyze.ProgressEvent) {
			if event.Type == analyze.ProgressWarning && event.Err != nil {
				warned = true
			}
		}

		result, err := pipeline.Run(context.Background(), listingDoc(), progress)

		require.NoError(t, err)
		assert.Equal(t, dealscan.VerdictFairDeal, result.Verdict)
		assert.True(t, warned)
	})

	t.Run("market lookups degrade without a shopping index", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{Title: "DeWalt Drill", Price: "$85"}

		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					return "DeWalt DCD791 Drill", nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					assert.Nil(t, req.Retail)
					assert.Nil(t, req.Used)
					return &dealscan.AnalysisResult{Verdict: dealscan.VerdictFairDeal}, nil
				},
			},
		}

		_, err := pipeline.Run(context.Background(), listingDoc(), nil)
		require.NoError(t, err)
	})

	t.Run("market lookup failure degrades to missing signals", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{Title: "DeWalt Drill", Price: "$85"}

		var (
			mu       sync.Mutex
			warnings int
		)
		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					return "DeWalt DCD791 Drill", nil
				},
			},
			Shopping: &mock.ShoppingIndex{
				SearchFn: func(ctx context.Context, query string) ([]dealscan.ShoppingResult, error) {
					return nil, dealscan.Errorf(dealscan.ERATELIMIT, "slow down")
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					assert.Nil(t, req.Retail)
					assert.Nil(t, req.Used)
					return &dealscan.AnalysisResult{Verdict: dealscan.VerdictFairDeal}, nil
				},
			},
		}

		progress := func(event analyze.ProgressEvent) {
			if event.Type == analyze.ProgressWarning {
				mu.Lock()
				warnings++
				mu.Unlock()
			}
		}

		_, err := pipeline.Run(context.Background(), listingDoc(), progress)

		require.NoError(t, err)
		assert.Equal(t, 2, warnings)
	})

	t.Run("synthesis failure is terminal", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{Title: "Nintendo Switch", Price: "$200"}

		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					return "Nintendo Switch OLED", nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					return nil, dealscan.Errorf(dealscan.EUNAUTHORIZED, "invalid API key")
				},
			},
		}

		_, err := pipeline.Run(context.Background(), listingDoc(), nil)

		assert.Equal(t, dealscan.EUNAUTHORIZED, dealscan.ErrorCode(err))
	})

	t.Run("history failure does not fail the run", func(t *testing.T) {
		t.Parallel()

		fields := dealscan.Fields{Title: "Nintendo Switch", Price: "$200"}

		var warned bool
		pipeline := &analyze.Pipeline{
			Registry: extractingRegistry(fields, nil),
			Identifier: &mock.Identifier{
				IdentifyFn: func(ctx context.Context, listing *dealscan.Listing) (string, error) {
					return "Nintendo Switch OLED", nil
				},
			},
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
					return &dealscan.AnalysisResult{Verdict: dealscan.VerdictHomeRun}, nil
				},
			},
			History: &mock.HistoryService{
				CreateItemFn: func(ctx context.Context, item *dealscan.HistoryItem) error {
					return dealscan.Errorf(dealscan.EINTERNAL, "disk full")
				},
			},
		}

		progress := func(event analyze.ProgressEvent) {
			if event.Type == analyze.ProgressWarning {
				warned = true
			}
		}

		result, err := pipeline.Run(context.Background(), listingDoc(), progress)

		require.NoError(t, err)
		assert.Equal(t, dealscan.VerdictHomeRun, result.Verdict)
		assert.True(t, warned)
	})
}
