package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func completedSession(t *testing.T) *Session {
	t.Helper()
	o := testOrchestrator(t)
	o.Plan("payments", nil, "ECS payments API")
	sess, err := o.Improve("", true)
	if err != nil {
		t.Fatalf("Improve error: %v", err)
	}
	return sess
}

func TestADR_BodyIsIdempotent(t *testing.T) {
	first := completedSession(t)
	second := completedSession(t)

	if len(first.ADRs) != len(second.ADRs) {
		t.Fatalf("ADR counts differ: %d vs %d", len(first.ADRs), len(second.ADRs))
	}
	for i := range first.ADRs {
		if first.ADRs[i].Body != second.ADRs[i].Body {
			t.Errorf("ADR %s body differs between identical runs", first.ADRs[i].PracticeID)
		}
	}
}

func TestADR_BodySections(t *testing.T) {
	sess := completedSession(t)

	var adr ADR
	for _, a := range sess.ADRs {
		if a.PracticeID == "SEC01-BP01" {
			adr = a
		}
	}

	for _, section := range []string{
		"## Status", "## Context", "## Decision", "## Trade-offs",
		"## Implementation", "## Consequences", "## Related practices",
	} {
		if !strings.Contains(adr.Body, section) {
			t.Errorf("body missing %q", section)
		}
	}
	if !strings.Contains(adr.Body, "SEC01-BP01") {
		t.Error("body should name the practice")
	}
	if !strings.Contains(adr.Body, "1. Create one account per environment under an organization") {
		t.Error("implementation section should number the guidance steps")
	}
	if !strings.Contains(adr.Body, "- SEC01-BP02: Secure account root user") {
		t.Error("related section should list the graph neighbors")
	}
	if strings.Contains(adr.Body, "Date:") {
		t.Error("body must not carry a date; the writer injects it")
	}
}

func TestADR_BodyWithoutGuidanceOrNeighbors(t *testing.T) {
	sess := completedSession(t)

	var adr ADR
	for _, a := range sess.ADRs {
		if a.PracticeID == "REL01-BP01" {
			adr = a
		}
	}

	if !strings.Contains(adr.Body, "## Implementation") {
		t.Error("implementation section must be present even without steps")
	}
	if !strings.Contains(adr.Body, "No step guidance is bundled") {
		t.Error("missing the no-guidance fallback line")
	}
	if strings.Contains(adr.Body, "## Related practices") {
		t.Error("isolated practice should have no related section")
	}
}

func TestADR_Filename(t *testing.T) {
	tests := []struct {
		adr  ADR
		want string
	}{
		{ADR{PracticeID: "SEC01-BP01", Title: "Separate workloads using accounts"}, "sec01-bp01-separate-workloads-using-accounts.md"},
		{ADR{PracticeID: "REL01-BP01", Title: "Monitor service quotas!"}, "rel01-bp01-monitor-service-quotas.md"},
		{ADR{PracticeID: "OPS01-BP01", Title: "  Weird -- spacing  "}, "ops01-bp01-weird-spacing.md"},
	}
	for _, tt := range tests {
		if got := tt.adr.Filename(); got != tt.want {
			t.Errorf("Filename() = %q, want %q", got, tt.want)
		}
	}
}

func TestWriteADRs(t *testing.T) {
	freezeTime(t)
	sess := completedSession(t)
	dir := filepath.Join(t.TempDir(), "adrs")

	if err := WriteADRs(sess.ADRs, dir); err != nil {
		t.Fatalf("WriteADRs error: %v", err)
	}

	for _, a := range sess.ADRs {
		data, err := os.ReadFile(filepath.Join(dir, a.Filename()))
		if err != nil {
			t.Fatalf("reading %s: %v", a.Filename(), err)
		}
		content := string(data)
		if !strings.Contains(content, "Date: 2025-06-01") {
			t.Errorf("%s missing injected date", a.Filename())
		}
		if !strings.HasPrefix(content, "# ADR: ") {
			t.Errorf("%s does not start with the title", a.Filename())
		}
	}

	index, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	text := string(index)
	if !strings.Contains(text, "## SECURITY") || !strings.Contains(text, "## RELIABILITY") {
		t.Error("index not grouped by pillar")
	}
	for _, a := range sess.ADRs {
		if !strings.Contains(text, a.Filename()) {
			t.Errorf("index missing link to %s", a.Filename())
		}
	}
}

func TestAssess(t *testing.T) {
	o := testOrchestrator(t)
	bp, err := o.store.Get("SEC01-BP01")
	if err != nil {
		t.Fatal(err)
	}

	// Two distinct title/area keywords in the context mean compliant.
	if got := Assess(bp, "we separate accounts per environment and keep workloads isolated", nil, false); got != StatusCompliant {
		t.Errorf("status = %s, want COMPLIANT", got)
	}
	if got := Assess(bp, "a kubernetes cluster on bare metal", nil, false); got != StatusNonCompliant {
		t.Errorf("status = %s, want NON_COMPLIANT", got)
	}
	if got := Assess(bp, "", map[string]string{"q": "a"}, false); got != StatusNeedsReview {
		t.Errorf("status = %s, want NEEDS_REVIEW", got)
	}
	if got := Assess(bp, "", nil, true); got != StatusIncomplete {
		t.Errorf("status = %s, want INCOMPLETE", got)
	}
}
