package priority

import (
	"testing"
	"testing/fstest"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// matrixCorpus covers every rule in the classification table.
const matrixCorpus = `[
	{"id": "SEC01-BP01", "title": "high auto", "description": "x", "pillar": "SECURITY", "risk": "HIGH"},
	{"id": "SEC01-BP02", "title": "high input connected", "description": "x", "pillar": "SECURITY", "risk": "HIGH", "requires_user_input": true, "questions": ["q"], "related_ids": ["SEC01-BP01", "SEC01-BP03"]},
	{"id": "SEC01-BP03", "title": "high input isolated", "description": "x", "pillar": "SECURITY", "risk": "HIGH", "requires_user_input": true, "questions": ["q"]},
	{"id": "REL01-BP01", "title": "medium connected", "description": "x", "pillar": "RELIABILITY", "risk": "MEDIUM", "related_ids": ["SEC01-BP01", "SEC01-BP03"]},
	{"id": "REL01-BP02", "title": "medium isolated", "description": "x", "pillar": "RELIABILITY", "risk": "MEDIUM"},
	{"id": "SUS01-BP01", "title": "low", "description": "x", "pillar": "SUSTAINABILITY", "risk": "LOW"}
]`

func matrixEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := knowledge.Load(fstest.MapFS{
		"corpus.json": &fstest.MapFile{Data: []byte(matrixCorpus)},
	})
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}
	return NewEngine(store)
}

func TestClassify_RuleTable(t *testing.T) {
	e := matrixEngine(t)

	// SEC01-BP03 is listed by SEC01-BP02 and REL01-BP01, so symmetry
	// gives it degree 2 and the connected HIGH+input rule applies.
	tests := []struct {
		id   string
		want Quadrant
	}{
		{"SEC01-BP01", DoFirst},  // HIGH, no input needed
		{"SEC01-BP02", DoFirst},  // HIGH, input, degree 2
		{"SEC01-BP03", DoFirst},  // HIGH, input, degree 2 via symmetry
		{"REL01-BP01", Schedule}, // MEDIUM, degree 2
		{"REL01-BP02", Delegate}, // MEDIUM, isolated
		{"SUS01-BP01", Eliminate},
	}
	for _, tt := range tests {
		bp, err := e.store.Get(tt.id)
		if err != nil {
			t.Fatalf("Get(%s): %v", tt.id, err)
		}
		if got := e.Classify(bp); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s (degree %d)",
				tt.id, got, tt.want, e.store.Degree(tt.id))
		}
	}
}

func TestMatrix_AllQuadrantsPresent(t *testing.T) {
	e := matrixEngine(t)

	matrix := e.Matrix(nil)
	if len(matrix) != len(QuadrantOrder) {
		t.Fatalf("matrix has %d buckets, want %d", len(matrix), len(QuadrantOrder))
	}
	for _, q := range QuadrantOrder {
		if _, ok := matrix[q]; !ok {
			t.Errorf("bucket %s missing", q)
		}
	}
}

func TestMatrix_BucketsSumToInput(t *testing.T) {
	e := matrixEngine(t)

	matrix := e.Matrix(nil)
	total := 0
	for _, entries := range matrix {
		total += len(entries)
	}
	if total != 6 {
		t.Errorf("bucketed %d practices, want 6", total)
	}
}

func TestMatrix_PillarFilter(t *testing.T) {
	e := matrixEngine(t)

	matrix := e.Matrix([]knowledge.Pillar{knowledge.Sustainability})
	if len(matrix[Eliminate]) != 1 {
		t.Errorf("ELIMINATE = %d, want 1", len(matrix[Eliminate]))
	}
	if len(matrix[DoFirst]) != 0 {
		t.Errorf("DO_FIRST = %d, want 0", len(matrix[DoFirst]))
	}
}

func TestAction_EveryQuadrantHasOne(t *testing.T) {
	for _, q := range QuadrantOrder {
		if Action(q) == "" {
			t.Errorf("Action(%s) is empty", q)
		}
	}
}
