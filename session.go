package dealscan

import "sync"

// Session holds per-session state shared between an analysis run and the
// auxiliary comps action. The identity established by the last run is
// overwritten by each new run; it is explicit state passed to both
// consumers rather than an ambient global.
type Session struct {
	mu       sync.Mutex
	identity string
}

// SetIdentity records the identity established by an analysis run,
// replacing any previous one.
func (s *Session) SetIdentity(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// Identity returns the identity established by the most recent analysis
// run, or the empty string when no run has completed.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}
