package priority

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// testCorpus: BP01 scores 3*3+2=11 (HIGH, degree 2), BP02 scores
// 3*3+1+1=11 (HIGH, degree 1, needs input), BP03 scores 3*2+1=7
// (MEDIUM, degree 1), BP04 scores 3*1=3 (LOW, isolated).
const testCorpus = `[
	{"id": "SEC01-BP01", "title": "a", "description": "a", "pillar": "SECURITY", "risk": "HIGH", "related_ids": ["SEC01-BP02", "REL01-BP01"]},
	{"id": "SEC01-BP02", "title": "b", "description": "b", "pillar": "SECURITY", "risk": "HIGH", "requires_user_input": true, "questions": ["q"]},
	{"id": "REL01-BP01", "title": "c", "description": "c", "pillar": "RELIABILITY", "risk": "MEDIUM"},
	{"id": "COST01-BP01", "title": "d", "description": "d", "pillar": "COST_OPTIMIZATION", "risk": "LOW"}
]`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := knowledge.Load(fstest.MapFS{
		"corpus.json": &fstest.MapFile{Data: []byte(testCorpus)},
	})
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}
	return NewEngine(store)
}

func TestScore(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		id   string
		want int
	}{
		{"SEC01-BP01", 11}, // 3*3 + 2 connections
		{"SEC01-BP02", 11}, // 3*3 + 1 connection + input bonus
		{"REL01-BP01", 7},  // 3*2 + 1 connection
		{"COST01-BP01", 3}, // 3*1
	}
	for _, tt := range tests {
		bp := mustGet(t, e, tt.id)
		if got := e.Score(bp); got != tt.want {
			t.Errorf("Score(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestRank_DescendingScoreWithIDTiebreak(t *testing.T) {
	e := testEngine(t)

	ranked := e.Rank(nil)
	want := []string{"SEC01-BP01", "SEC01-BP02", "REL01-BP01", "COST01-BP01"}
	if len(ranked) != len(want) {
		t.Fatalf("Rank() length = %d, want %d", len(ranked), len(want))
	}
	for i, id := range want {
		if ranked[i].Practice.ID != id {
			t.Errorf("Rank()[%d] = %s, want %s", i, ranked[i].Practice.ID, id)
		}
	}
}

func TestRank_IsDeterministic(t *testing.T) {
	e := testEngine(t)

	first := e.Rank(nil)
	for run := 0; run < 5; run++ {
		again := e.Rank(nil)
		for i := range first {
			if again[i].Practice.ID != first[i].Practice.ID {
				t.Fatalf("run %d position %d: %s != %s",
					run, i, again[i].Practice.ID, first[i].Practice.ID)
			}
		}
	}
}

func TestRank_PillarFilter(t *testing.T) {
	e := testEngine(t)

	ranked := e.Rank([]knowledge.Pillar{knowledge.Reliability})
	if len(ranked) != 1 || ranked[0].Practice.ID != "REL01-BP01" {
		t.Errorf("Rank(RELIABILITY) = %v, want just REL01-BP01", ranked)
	}
}

func TestTopN_ValidCounts(t *testing.T) {
	e := testEngine(t)

	got, err := e.TopN(nil, 3)
	if err != nil {
		t.Fatalf("TopN(3) error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("TopN(3) length = %d", len(got))
	}
}

func TestTopN_FewerMatchesThanCountIsNotPadded(t *testing.T) {
	e := testEngine(t)

	got, err := e.TopN([]knowledge.Pillar{knowledge.Security}, 5)
	if err != nil {
		t.Fatalf("TopN error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("length = %d, want the 2 security practices", len(got))
	}
}

func TestTopN_RejectsOtherCounts(t *testing.T) {
	e := testEngine(t)

	for _, count := range []int{0, 1, 4, 7, 100, -3} {
		_, err := e.TopN(nil, count)
		var verr *knowledge.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("TopN(%d) error = %v, want *ValidationError", count, err)
		}
	}
}

func mustGet(t *testing.T, e *Engine, id string) *knowledge.BestPractice {
	t.Helper()
	bp, err := e.store.Get(id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	return bp
}
