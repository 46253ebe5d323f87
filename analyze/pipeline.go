// Package analyze provides the listing analysis orchestration. It
// coordinates extraction, product identification, the live market
// lookups, and the final verdict synthesis.
package analyze

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/dealscan"
)

// Pipeline orchestrates the four analysis stages. Stages one through
// three degrade on failure; synthesis is terminal.
type Pipeline struct {
	Registry   dealscan.StrategyRegistry
	Identifier dealscan.Identifier
	Shopping   dealscan.ShoppingIndex // nil skips the market stage
	Analyzer   dealscan.Analyzer
	History    dealscan.HistoryService  // nil skips persistence
	Settings   dealscan.SettingsService // nil skips usage counters
	Tokens     dealscan.TokenCounter    // nil skips token accounting
	Session    *dealscan.Session        // nil skips session state
	MaxImages  int
}

// ProgressEvent reports progress during an analysis run.
type ProgressEvent struct {
	Type   ProgressType
	Detail string
	Err    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressExtracted ProgressType = iota
	ProgressIdentified
	ProgressMarketChecked
	ProgressSynthesized
	ProgressWarning
)

// ProgressFunc is a callback for reporting analysis progress.
type ProgressFunc func(event ProgressEvent)

// Run analyzes the listing on doc and returns the synthesized verdict.
// The progress callback, if provided, receives events as stages complete
// and warnings when a stage degrades.
func (p *Pipeline) Run(ctx context.Context, doc dealscan.Document, progress ProgressFunc) (*dealscan.AnalysisResult, error) {
	notify := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	// Stage 0: extraction.
	listing, err := p.extract(ctx, doc)
	if err != nil {
		return nil, err
	}
	notify(ProgressEvent{Type: ProgressExtracted, Detail: listing.Title})

	// Stage 1: identification. Failure substitutes the scraped title so
	// the rest of the pipeline can proceed on a weaker key.
	identity, err := p.Identifier.Identify(ctx, listing)
	if err != nil {
		identity = listing.Title
		if identity == "" {
			identity = "Unknown Product"
		}
		notify(ProgressEvent{Type: ProgressWarning, Detail: "product identification failed, using listing title", Err: err})
	}
	if p.Session != nil {
		p.Session.SetIdentity(identity)
	}
	notify(ProgressEvent{Type: ProgressIdentified, Detail: identity})

	// Stages 2a/2b: the market lookups run concurrently. Either failing
	// degrades the verdict's inputs, never the run.
	retail, used := p.market(ctx, identity, notify)
	notify(ProgressEvent{Type: ProgressMarketChecked})

	// Stage 3: synthesis.
	req := dealscan.AnalysisRequest{
		Listing:  listing,
		Identity: identity,
		Retail:   retail,
		Used:     used,
	}
	result, err := p.Analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	notify(ProgressEvent{Type: ProgressSynthesized, Detail: result.Verdict})

	p.record(ctx, listing, identity, req, result, notify)

	return result, nil
}

// extract runs the routed strategy over the document and validates that
// the page yielded enough to analyze.
func (p *Pipeline) extract(ctx context.Context, doc dealscan.Document) (*dealscan.Listing, error) {
	strategy := p.Registry.GetForURL(doc.URL())

	fields, err := strategy.ExtractFields(ctx, doc)
	if err != nil {
		return nil, err
	}

	maxImages := p.MaxImages
	if maxImages <= 0 {
		maxImages = dealscan.MaxListingImages
	}
	images, err := strategy.HarvestImages(ctx, doc, maxImages)
	if err != nil {
		images = nil
	}

	listing := &dealscan.Listing{
		Title:       fields.Title,
		Price:       fields.Price,
		Description: fields.Description,
		Images:      images,
		SourceURL:   doc.URL(),
	}
	if err := listing.Validate(); err != nil {
		return nil, err
	}
	return listing, nil
}

// market runs the paired shopping lookups. Returns nil signals when the
// shopping index is absent or a lookup fails.
func (p *Pipeline) market(ctx context.Context, identity string, notify ProgressFunc) (*dealscan.RetailSignal, *dealscan.UsedMarket) {
	if p.Shopping == nil {
		notify(ProgressEvent{Type: ProgressWarning, Detail: "no shopping search configured, skipping market lookups"})
		return nil, nil
	}

	var (
		retail *dealscan.RetailSignal
		used   *dealscan.UsedMarket
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, err := p.Shopping.Search(gctx, identity+" new")
		if err != nil {
			notify(ProgressEvent{Type: ProgressWarning, Detail: "retail price lookup failed", Err: err})
			return nil
		}
		retail = dealscan.FilterRetail(results)
		return nil
	})
	g.Go(func() error {
		query := identity + " used"
		results, err := p.Shopping.Search(gctx, query)
		if err != nil {
			notify(ProgressEvent{Type: ProgressWarning, Detail: "used market lookup failed", Err: err})
			return nil
		}
		used = dealscan.CollectUsed(query, results)
		return nil
	})
	_ = g.Wait()

	return retail, used
}

// record persists the run and bumps the usage counters. Bookkeeping
// failures degrade to warnings; the verdict is already in hand.
func (p *Pipeline) record(ctx context.Context, listing *dealscan.Listing, identity string, req dealscan.AnalysisRequest, result *dealscan.AnalysisResult, notify ProgressFunc) {
	if p.History != nil {
		item := &dealscan.HistoryItem{
			Product:     identity,
			ListingHash: listing.Hash(),
			Result:      result,
		}
		if err := p.History.CreateItem(ctx, item); err != nil {
			notify(ProgressEvent{Type: ProgressWarning, Detail: "failed to save history", Err: err})
		}
	}

	if p.Settings == nil {
		return
	}
	if _, err := p.Settings.Increment(ctx, dealscan.SettingAnalysisCount, 1); err != nil {
		notify(ProgressEvent{Type: ProgressWarning, Detail: "failed to update analysis count", Err: err})
	}
	if p.Tokens != nil {
		text := strings.Join([]string{listing.Title, listing.Description, req.Identity}, "\n")
		if count, err := p.Tokens.CountTokens(ctx, text); err == nil && count > 0 {
			if _, err := p.Settings.Increment(ctx, dealscan.SettingPromptTokens, int64(count)); err != nil {
				notify(ProgressEvent{Type: ProgressWarning, Detail: "failed to update token count", Err: err})
			}
		}
	}
}
