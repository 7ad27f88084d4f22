package reconcile

import "sync"

// Stats counts the drop decisions taken over a run. Every skip is counted
// rather than raised: diagnostics must stay observable without turning
// record-scoped problems into run failures.
type Stats struct {
	RowsKept        int
	RowsSkipped     int
	CrossEventDrops int
	DuplicateDrops  int
}

// Session is the run-wide reconciliation state: which event owns each
// fighter name and which (event, fighter) pairs were already emitted.
// A Session is safe for use from concurrent merges; each event's guard
// checks run under one lock so two events cannot interleave them.
type Session struct {
	mu        sync.Mutex
	nameEvent map[string]string
	emitted   map[string]bool
	stats     Stats
}

// NewSession creates an empty session. Tests construct fresh sessions
// directly; production runs use one per invocation.
func NewSession() *Session {
	return &Session{
		nameEvent: make(map[string]string),
		emitted:   make(map[string]bool),
	}
}

// Stats returns a snapshot of the session's drop counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
