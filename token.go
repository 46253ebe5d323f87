package dealscan

import "context"

// TokenCounter counts tokens in text for a specific model. The pipeline
// uses it to feed the accumulated usage counters.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
