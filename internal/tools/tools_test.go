package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/priority"
	"github.com/ksuarez/archadvisor/internal/review"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

const toolCorpus = `[
	{
		"id": "SEC01-BP01",
		"title": "Separate workloads using accounts",
		"description": "Isolate environments with account boundaries",
		"outcome": "Blast radius contained",
		"pillar": "SECURITY",
		"area": ["Identity and access management"],
		"risk": "HIGH",
		"related_ids": ["SEC01-BP02"],
		"href": "https://docs.aws.amazon.com/wellarchitected/latest/framework/sec_securely_operate_multi_accounts.html"
	},
	{
		"id": "SEC01-BP02",
		"title": "Secure account root user",
		"description": "Protect the root user and stop routine use",
		"pillar": "SECURITY",
		"risk": "HIGH",
		"requires_user_input": true,
		"questions": ["Is MFA enabled on the root user?"]
	},
	{
		"id": "REL01-BP01",
		"title": "Monitor service quotas",
		"description": "Track quota usage against limits",
		"pillar": "RELIABILITY",
		"risk": "MEDIUM"
	}
]`

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()
	store, err := knowledge.Load(fstest.MapFS{
		"corpus.json": &fstest.MapFile{Data: []byte(toolCorpus)},
	})
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}
	return store
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func mustNotError(t *testing.T, r *mcp.CallToolResult, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if r != nil && r.IsError {
		t.Fatalf("handler returned tool error: %s", resultText(r))
	}
}

func mustToolError(t *testing.T, r *mcp.CallToolResult, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("expected tool error result, got protocol error: %v", err)
	}
	if r == nil || !r.IsError {
		t.Fatalf("expected tool error, got: %s", resultText(r))
	}
	return resultText(r)
}

// ─── Catalog tools ───────────────────────────────────────────────────────────

func TestSearchTool_FiltersAndRanks(t *testing.T) {
	tool := NewSearchTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"pillar":  "SECURITY",
		"keyword": "root",
	}))
	mustNotError(t, result, err)

	text := resultText(result)
	if !strings.Contains(text, "SEC01-BP02") {
		t.Errorf("missing keyword match: %s", text)
	}
	if strings.Contains(text, "REL01-BP01") {
		t.Error("pillar filter leaked a reliability practice")
	}
}

func TestSearchTool_InvalidPillar(t *testing.T) {
	tool := NewSearchTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"pillar": "VELOCITY",
	}))
	text := mustToolError(t, result, err)
	if !strings.Contains(text, "VELOCITY") {
		t.Errorf("error should echo the bad value: %s", text)
	}
}

func TestPracticeTool(t *testing.T) {
	tool := NewPracticeTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id": "SEC01-BP02",
	}))
	mustNotError(t, result, err)
	text := resultText(result)
	if !strings.Contains(text, "Is MFA enabled on the root user?") {
		t.Errorf("missing assessment question: %s", text)
	}

	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	mustToolError(t, result, err)

	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id": "SEC99-BP99",
	}))
	mustToolError(t, result, err)
}

func TestPillarsTool(t *testing.T) {
	tool := NewPillarsTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	mustNotError(t, result, err)
	text := resultText(result)
	if !strings.Contains(text, "SECURITY: 2 practices") {
		t.Errorf("missing security count: %s", text)
	}
	if !strings.Contains(text, "SUSTAINABILITY: 0 practices") {
		t.Errorf("empty pillars should still be listed: %s", text)
	}
}

func TestRelatedTool_Symmetry(t *testing.T) {
	tool := NewRelatedTool(testStore(t))

	// SEC01-BP02 never lists SEC01-BP01 itself.
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id": "SEC01-BP02",
	}))
	mustNotError(t, result, err)
	if !strings.Contains(resultText(result), "SEC01-BP01") {
		t.Errorf("symmetric neighbor missing: %s", resultText(result))
	}
}

// ─── Prioritization tools ────────────────────────────────────────────────────

func TestPriorityTool_RejectsBadCount(t *testing.T) {
	tool := NewPriorityTool(priority.NewEngine(testStore(t)))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"count": float64(4),
	}))
	text := mustToolError(t, result, err)
	if !strings.Contains(text, "3, 5, 10") {
		t.Errorf("error should list allowed counts: %s", text)
	}
}

func TestPriorityTool_DefaultCount(t *testing.T) {
	tool := NewPriorityTool(priority.NewEngine(testStore(t)))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	mustNotError(t, result, err)
	// Three practices in the corpus, so the default 5 returns all three.
	if !strings.Contains(resultText(result), "Top 3 priority actions") {
		t.Errorf("unexpected output: %s", resultText(result))
	}
}

func TestMatrixTool(t *testing.T) {
	tool := NewMatrixTool(priority.NewEngine(testStore(t)))

	result, err := tool.Handle(context.Background(), makeReq(nil))
	mustNotError(t, result, err)
	text := resultText(result)
	for _, q := range []string{"DO_FIRST", "SCHEDULE", "DELEGATE", "ELIMINATE"} {
		if !strings.Contains(text, q) {
			t.Errorf("missing quadrant %s: %s", q, text)
		}
	}
}

func TestSolutionsTool_QuickWins(t *testing.T) {
	tool := NewSolutionsTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"quick_wins_only": true,
	}))
	mustNotError(t, result, err)
	text := resultText(result)
	// SEC01-BP02 needs input, so it is never a quick win.
	if strings.Contains(text, "SEC01-BP02") {
		t.Errorf("input practice reported as quick win: %s", text)
	}
	if !strings.Contains(text, "SEC01-BP01") {
		t.Errorf("missing quick win: %s", text)
	}
}

func TestFixTool(t *testing.T) {
	tool := NewFixTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id": "SEC01-BP01",
	}))
	mustNotError(t, result, err)
	text := resultText(result)
	if !strings.Contains(text, "Fix plan for SEC01-BP01") {
		t.Errorf("unexpected output: %s", text)
	}
	if !strings.Contains(text, "docs.aws.amazon.com") {
		t.Errorf("missing reference link: %s", text)
	}
}

// ─── Review workflow tools ───────────────────────────────────────────────────

func TestReviewWorkflow_EndToEnd(t *testing.T) {
	store := testStore(t)
	reviews := review.NewOrchestrator(store)
	outDir := filepath.Join(t.TempDir(), "adrs")

	// Plan.
	planTool := NewPlanTool(reviews)
	result, err := planTool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name":    "payments",
		"workload_context": "ECS payments API",
	}))
	mustNotError(t, result, err)
	if !strings.Contains(resultText(result), "SEC01-BP02") {
		t.Fatalf("plan should list the pending practice: %s", resultText(result))
	}

	// Finalizing with pending questions fails.
	finalizeTool := NewFinalizeTool(reviews, nil, outDir)
	result, err = finalizeTool.Handle(context.Background(), makeReq(nil))
	mustToolError(t, result, err)

	// Collect the answers.
	collectTool := NewCollectTool(reviews)
	result, err = collectTool.Handle(context.Background(), makeReq(map[string]interface{}{
		"practice_id": "SEC01-BP02",
		"responses": map[string]interface{}{
			"Is MFA enabled on the root user?": "yes",
		},
	}))
	mustNotError(t, result, err)
	if !strings.Contains(resultText(result), "All questions are answered") {
		t.Fatalf("unexpected collect output: %s", resultText(result))
	}

	// Finalize writes the decision records.
	result, err = finalizeTool.Handle(context.Background(), makeReq(nil))
	mustNotError(t, result, err)
	if !strings.Contains(resultText(result), "Review complete") {
		t.Fatalf("unexpected finalize output: %s", resultText(result))
	}

	if _, err := os.Stat(filepath.Join(outDir, "README.md")); err != nil {
		t.Errorf("index not written: %v", err)
	}

	// The session is closed now.
	result, err = finalizeTool.Handle(context.Background(), makeReq(nil))
	mustToolError(t, result, err)
}

func TestCollectTool_RequiresResponses(t *testing.T) {
	reviews := review.NewOrchestrator(testStore(t))
	tool := NewCollectTool(reviews)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"practice_id": "SEC01-BP02",
	}))
	mustToolError(t, result, err)
}

func TestReviewTool_ForceSemantics(t *testing.T) {
	store := testStore(t)
	reviews := review.NewOrchestrator(store)
	outDir := filepath.Join(t.TempDir(), "adrs")
	tool := NewReviewTool(reviews, nil, outDir)

	// Scope includes an input practice: fails without force.
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name": "payments",
	}))
	text := mustToolError(t, result, err)
	if !strings.Contains(text, "force") {
		t.Errorf("error should mention the force escape hatch: %s", text)
	}

	// With force it completes and marks the gap.
	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name": "payments",
		"force":         true,
	}))
	mustNotError(t, result, err)
	if !strings.Contains(resultText(result), "INCOMPLETE") {
		t.Errorf("summary should surface incomplete assessments: %s", resultText(result))
	}
}

func TestFixTool_PreferredApproach(t *testing.T) {
	tool := NewFixTool(testStore(t))

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"id":                 "SEC01-BP01",
		"preferred_approach": "terraform",
	}))
	mustNotError(t, result, err)
	text := resultText(result)
	if !strings.Contains(text, "Preferred approach: terraform") {
		t.Errorf("plan should carry the caller's approach: %s", text)
	}
	if !strings.Contains(text, "## Prerequisites") {
		t.Errorf("missing pillar prerequisites: %s", text)
	}
	if !strings.Contains(text, "CloudTrail enabled in every region") {
		t.Errorf("missing security prerequisite: %s", text)
	}
}

func TestReviewTool_DocumentationPaths(t *testing.T) {
	store := testStore(t)
	outDir := filepath.Join(t.TempDir(), "adrs")

	doc := filepath.Join(t.TempDir(), "architecture.md")
	if err := os.WriteFile(doc, []byte("We monitor our service quotas weekly."), 0o644); err != nil {
		t.Fatal(err)
	}

	tool := NewReviewTool(review.NewOrchestrator(store), nil, outDir)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name":       "payments",
		"pillars":             "RELIABILITY",
		"documentation_paths": []interface{}{doc},
	}))
	mustNotError(t, result, err)
	// The document covers REL01-BP01's title keywords, so the
	// assessment flips to compliant.
	if !strings.Contains(resultText(result), "- COMPLIANT: 1") {
		t.Errorf("document content not folded into the assessment: %s", resultText(result))
	}

	result, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name":       "payments",
		"pillars":             "RELIABILITY",
		"documentation_paths": []interface{}{filepath.Join(t.TempDir(), "absent.md")},
	}))
	text := mustToolError(t, result, err)
	if !strings.Contains(text, "absent.md") {
		t.Errorf("error should name the unreadable file: %s", text)
	}
}

func TestToolNames(t *testing.T) {
	store := testStore(t)
	reviews := review.NewOrchestrator(store)

	tests := []struct {
		name string
		def  mcp.Tool
	}{
		{"get_priority_analysis", NewPriorityTool(priority.NewEngine(store)).Definition()},
		{"get_smart_solutions", NewSolutionsTool(store).Definition()},
		{"review", NewReviewTool(reviews, nil, "adrs").Definition()},
		{"ask_implementation_fix", NewFixTool(store).Definition()},
	}
	for _, tt := range tests {
		if tt.def.Name != tt.name {
			t.Errorf("tool name = %q, want %q", tt.def.Name, tt.name)
		}
	}
}

func TestPillarsArgValidation(t *testing.T) {
	reviews := review.NewOrchestrator(testStore(t))
	tool := NewPlanTool(reviews)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"workload_name": "payments",
		"pillars":       "SECURITY, VELOCITY",
	}))
	mustToolError(t, result, err)
}
