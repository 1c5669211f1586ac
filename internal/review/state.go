package review

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/priority"
	"github.com/ksuarez/archadvisor/internal/smart"
)

var (
	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = errors.New("review session not found")

	// ErrSessionClosed is returned when a mutation targets a session
	// whose phase is COMPLETE.
	ErrSessionClosed = errors.New("review session is closed")

	// ErrIncompleteAssessment is returned by Improve when questions
	// remain unanswered and force was not set.
	ErrIncompleteAssessment = errors.New("assessment incomplete: unanswered questions remain")

	// ErrNoActiveSession is returned when a call omits the session id
	// and no session has been created yet.
	ErrNoActiveSession = errors.New("no active review session")
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// Orchestrator drives review sessions over the knowledge store. It is
// safe for concurrent use.
type Orchestrator struct {
	store    *knowledge.Store
	engine   *priority.Engine
	sessions *registry
}

func NewOrchestrator(store *knowledge.Store) *Orchestrator {
	return &Orchestrator{
		store:    store,
		engine:   priority.NewEngine(store),
		sessions: newRegistry(),
	}
}

// Plan creates a session in the LEARN phase: it enumerates the
// practices for the selected pillars and partitions out the ones that
// need user input, seeding Pending with their assessment questions.
// An empty pillar list means all pillars.
func (o *Orchestrator) Plan(workload string, pillars []knowledge.Pillar, workloadContext string) *Session {
	if len(pillars) == 0 {
		pillars = knowledge.PillarOrder
	}
	now := timeNow().UTC().Format(time.RFC3339)
	s := &Session{
		ID:        newSessionID(),
		Workload:  workload,
		Pillars:   pillars,
		Context:   workloadContext,
		Phase:     PhaseLearn,
		Practices: o.store.ByPillars(pillars),
		Pending:   make(map[string][]string),
		Collected: make(map[string]map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, bp := range s.Practices {
		if bp.RequiresUserInput {
			s.Pending[bp.ID] = append([]string(nil), bp.Questions...)
		}
	}
	o.sessions.add(s)
	return s
}

// Session resolves an id to a live session. An empty id targets the
// most recently created session.
func (o *Orchestrator) Session(id string) (*Session, error) {
	if id == "" {
		s, ok := o.sessions.active()
		if !ok {
			return nil, ErrNoActiveSession
		}
		return s, nil
	}
	s, ok := o.sessions.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// CollectInput records answers for one practice and clears it from
// Pending. The first successful collection advances LEARN to MEASURE.
func (o *Orchestrator) CollectInput(sessionID, practiceID string, responses map[string]string) (*Session, error) {
	s, err := o.Session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase == PhaseComplete {
		return nil, fmt.Errorf("%w: %s", ErrSessionClosed, s.ID)
	}
	if _, ok := s.Pending[practiceID]; !ok {
		if _, ok := s.Collected[practiceID]; !ok {
			return nil, fmt.Errorf("%w: practice %s has no pending questions", knowledge.ErrNotFound, practiceID)
		}
	}
	answers := s.Collected[practiceID]
	if answers == nil {
		answers = make(map[string]string)
		s.Collected[practiceID] = answers
	}
	for q, a := range responses {
		answers[q] = a
	}
	delete(s.Pending, practiceID)
	if s.Phase == PhaseLearn {
		s.Phase = PhaseMeasure
	}
	s.UpdatedAt = timeNow().UTC().Format(time.RFC3339)
	return s, nil
}

// Improve runs the IMPROVE phase: it assesses every practice,
// prioritizes, generates SMART solutions, and produces one ADR per
// practice plus the ordering for the index. The session transitions to
// COMPLETE. With unanswered questions the call fails with
// ErrIncompleteAssessment unless force is set, in which case the
// affected practices are marked incomplete in their ADRs.
func (o *Orchestrator) Improve(sessionID string, force bool) (*Session, error) {
	s, err := o.Session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase == PhaseComplete {
		return nil, fmt.Errorf("%w: %s", ErrSessionClosed, s.ID)
	}
	if len(s.Pending) > 0 && !force {
		return nil, fmt.Errorf("%w: %d practices await input (%v)",
			ErrIncompleteAssessment, len(s.Pending), s.pendingIDs())
	}
	s.Phase = PhaseImprove

	ordered := make([]*knowledge.BestPractice, len(s.Practices))
	copy(ordered, s.Practices)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := o.engine.Score(ordered[i]), o.engine.Score(ordered[j])
		if si != sj {
			return si > sj
		}
		return ordered[i].ID < ordered[j].ID
	})

	s.ADRs = s.ADRs[:0]
	for _, bp := range ordered {
		_, pending := s.Pending[bp.ID]
		assessment := Assess(bp, s.Context, s.Collected[bp.ID], pending)
		sol := smart.Generate(bp, s.Context)
		// The id came out of the store, so Related cannot fail here.
		related, _ := o.store.Related(bp.ID, 1)
		s.ADRs = append(s.ADRs, newADR(bp, assessment, sol, o.engine.Score(bp), o.engine.Classify(bp), related))
	}
	s.Phase = PhaseComplete
	s.UpdatedAt = timeNow().UTC().Format(time.RFC3339)
	return s, nil
}

// RunReview is the one-shot path: plan plus immediate improve. Force
// carries the same semantics as Improve, so workloads whose practices
// all auto-assess complete without it.
func (o *Orchestrator) RunReview(workload string, pillars []knowledge.Pillar, workloadContext string, force bool) (*Session, error) {
	s := o.Plan(workload, pillars, workloadContext)
	return o.Improve(s.ID, force)
}
