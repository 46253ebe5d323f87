package mock

import (
	"context"

	"github.com/fwojciec/dealscan"
)

var _ dealscan.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of dealscan.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error)
}

func (a *Analyzer) Analyze(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
	return a.AnalyzeFn(ctx, req)
}
