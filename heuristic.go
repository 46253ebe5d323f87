package dealscan

import "context"

// Candidate is a value produced by a single extraction heuristic, tagged
// with the heuristic that found it.
type Candidate struct {
	Value  string
	Source string
}

// Heuristic is one step of an ordered extraction cascade. It returns the
// found candidate, or ok=false when it has no match. A heuristic error
// means the heuristic could not run at all (for example a prominence
// heuristic on a non-rendered document); the cascade treats it the same
// as no match.
type Heuristic func(ctx context.Context, doc Document) (Candidate, bool, error)

// FirstMatch evaluates heuristics in order and returns the first candidate
// found, short-circuiting the remaining heuristics. A heuristic error skips
// that heuristic rather than propagating: extraction never fails, it
// degrades.
func FirstMatch(ctx context.Context, doc Document, heuristics ...Heuristic) (Candidate, bool) {
	for _, h := range heuristics {
		candidate, ok, err := h(ctx, doc)
		if err != nil {
			continue
		}
		if ok {
			return candidate, true
		}
	}
	return Candidate{}, false
}
