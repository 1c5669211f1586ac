package history

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/review"
	"github.com/ksuarez/archadvisor/internal/smart"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSession(id string) *review.Session {
	return &review.Session{
		ID:       id,
		Workload: "payments",
		Pillars:  []knowledge.Pillar{knowledge.Security},
		Context:  "ECS payments API",
		Phase:    review.PhaseComplete,
		ADRs: []review.ADR{
			{
				PracticeID: "SEC01-BP01",
				Title:      "Separate workloads using accounts",
				Pillar:     knowledge.Security,
				Risk:       knowledge.RiskHigh,
				Status:     review.StatusNonCompliant,
				Solution: smart.Solution{
					Specific: "Implement account separation to contain blast radius",
				},
			},
			{
				PracticeID: "SEC01-BP02",
				Title:      "Secure account root user",
				Pillar:     knowledge.Security,
				Risk:       knowledge.RiskHigh,
				Status:     review.StatusNeedsReview,
				Solution: smart.Solution{
					Specific: "Enable MFA on the root user and alarm on its use",
				},
			},
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("RecordReview error: %v", err)
	}
	if err := s.RecordReview(sampleSession("rev-2")); err != nil {
		t.Fatalf("RecordReview error: %v", err)
	}

	reviews, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("Recent = %d reviews, want 2", len(reviews))
	}
	for _, r := range reviews {
		if r.Workload != "payments" {
			t.Errorf("workload = %q", r.Workload)
		}
		if r.ADRCount != 2 {
			t.Errorf("adr count = %d, want 2", r.ADRCount)
		}
		if r.Pillars != "SECURITY" {
			t.Errorf("pillars = %q", r.Pillars)
		}
	}
}

func TestSearch_FullText(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("RecordReview error: %v", err)
	}

	results, err := s.Search("MFA root", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search = %d results, want 1", len(results))
	}
	if results[0].PracticeID != "SEC01-BP02" {
		t.Errorf("matched %s, want SEC01-BP02", results[0].PracticeID)
	}
	if !strings.Contains(results[0].Decision, "MFA") {
		t.Errorf("decision = %q", results[0].Decision)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("RecordReview error: %v", err)
	}

	results, err := s.Search("kubernetes", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search = %d results, want 0", len(results))
	}
}

func TestSearch_QuotesHostileInput(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("RecordReview error: %v", err)
	}

	// FTS5 operators in user input must not cause a syntax error.
	if _, err := s.Search(`root AND NOT ("user`, 10); err != nil {
		t.Errorf("Search with operators error: %v", err)
	}
}

func TestRecordReview_IsIdempotentPerSession(t *testing.T) {
	s := newTestStore(t)

	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("first RecordReview error: %v", err)
	}
	if err := s.RecordReview(sampleSession("rev-1")); err != nil {
		t.Fatalf("second RecordReview error: %v", err)
	}

	reviews, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(reviews) != 1 {
		t.Errorf("Recent = %d reviews, want 1 after re-record", len(reviews))
	}
}
