// Package review implements the multi-phase review workflow: a
// per-session state machine that enumerates practices, gathers user
// input for those that cannot be auto-assessed, and emits one ADR per
// practice plus an index.
package review

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// --- Phase enum ---

// Phase is a step in the review methodology.
type Phase string

const (
	PhaseLearn    Phase = "LEARN"    // enumerate and partition practices
	PhaseMeasure  Phase = "MEASURE"  // collect user input
	PhaseImprove  Phase = "IMPROVE"  // prioritize and generate ADRs
	PhaseComplete Phase = "COMPLETE" // terminal
)

// --- Session ---

// Session is the mutable state for one review. Created by Plan,
// mutated only through Orchestrator methods, discarded with the
// process. All access goes through its mutex so concurrent tool calls
// against the same session serialize; distinct sessions are
// independent.
type Session struct {
	mu sync.Mutex

	ID       string
	Workload string
	Pillars  []knowledge.Pillar
	Context  string
	Phase    Phase

	// Practices is the enumerated set for the selected pillars,
	// stable dataset order.
	Practices []*knowledge.BestPractice

	// Pending maps practice id -> unanswered assessment questions.
	Pending map[string][]string

	// Collected maps practice id -> question -> answer.
	Collected map[string]map[string]string

	// ADRs holds the generated records, in practice order, once the
	// IMPROVE phase has run.
	ADRs []ADR

	CreatedAt string
	UpdatedAt string
}

// PendingIDs returns the ids still awaiting input, sorted.
// Caller must hold the session lock (Orchestrator methods do).
func (s *Session) pendingIDs() []string {
	ids := make([]string, 0, len(s.Pending))
	for id := range s.Pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// --- Registry ---

// registry tracks live sessions by id. The registry lock only guards
// the map; per-session work holds the session's own lock.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastID   string
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Session)}
}

func (r *registry) add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.lastID = s.ID
}

func (r *registry) get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// active returns the most recently created session. Tool calls that
// omit a session id target it, matching the one-plan-at-a-time shape
// of the review workflow.
func (r *registry) active() (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[r.lastID]
	return s, ok
}

// newSessionID returns a fresh session identifier.
func newSessionID() string {
	return uuid.NewString()
}
