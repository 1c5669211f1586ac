package review

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/priority"
	"github.com/ksuarez/archadvisor/internal/smart"
)

// ADR is one architecture decision record. Body holds the rendered
// markdown without the date line so regenerating for the same inputs
// yields identical content; the date is injected when the file is
// written.
type ADR struct {
	PracticeID string
	Title      string
	Pillar     knowledge.Pillar
	Risk       knowledge.Risk
	Status     Status
	Quadrant   priority.Quadrant
	Score      int
	Solution   smart.Solution
	Body       string
}

func newADR(bp *knowledge.BestPractice, st Status, sol smart.Solution, score int, q priority.Quadrant, related []*knowledge.BestPractice) ADR {
	a := ADR{
		PracticeID: bp.ID,
		Title:      bp.Title,
		Pillar:     bp.Pillar,
		Risk:       bp.Risk,
		Status:     st,
		Quadrant:   q,
		Score:      score,
		Solution:   sol,
	}
	a.Body = renderBody(bp, a, related)
	return a
}

func renderBody(bp *knowledge.BestPractice, a ADR, related []*knowledge.BestPractice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# ADR: %s\n\n", a.Title)
	b.WriteString("## Status\n\nProposed\n\n")

	b.WriteString("## Context\n\n")
	fmt.Fprintf(&b, "Best practice %s (%s pillar, %s risk): %s\n\n", bp.ID, bp.Pillar, bp.Risk, bp.Description)
	fmt.Fprintf(&b, "- Assessment: %s (%s)\n", a.Status, a.Status.Summary())
	fmt.Fprintf(&b, "- Priority score: %d\n", a.Score)
	fmt.Fprintf(&b, "- Quadrant: %s (%s)\n\n", a.Quadrant, priority.Action(a.Quadrant))

	b.WriteString("## Decision\n\n")
	fmt.Fprintf(&b, "%s\n\n", a.Solution.Specific)

	b.WriteString("## Trade-offs\n\n")
	fmt.Fprintf(&b, "- Adopting: %s\n", a.Solution.Relevant)
	fmt.Fprintf(&b, "- Cost: %s implementation effort, %s\n", a.Solution.Achievable, a.Solution.TimeBound)
	fmt.Fprintf(&b, "- Deferring: continued %s risk exposure on the %s pillar\n\n", a.Risk, a.Pillar)

	b.WriteString("## Implementation\n\n")
	if len(bp.ImplementationGuidance) == 0 {
		b.WriteString("No step guidance is bundled for this practice; start from the decision above.\n")
	}
	for i, step := range bp.ImplementationGuidance {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n")

	b.WriteString("## Consequences\n\n")
	fmt.Fprintf(&b, "- Measurable: %s\n", a.Solution.Measurable)
	fmt.Fprintf(&b, "- Achievable: %s effort\n", a.Solution.Achievable)
	fmt.Fprintf(&b, "- Relevant: %s\n", a.Solution.Relevant)
	fmt.Fprintf(&b, "- Time-bound: %s\n", a.Solution.TimeBound)
	if len(related) > 0 {
		b.WriteString("\n## Related practices\n\n")
		for _, r := range related {
			fmt.Fprintf(&b, "- %s: %s\n", r.ID, r.Title)
		}
	}
	if bp.HRef != "" {
		fmt.Fprintf(&b, "\nReference: %s\n", bp.HRef)
	}
	return b.String()
}

// Filename returns the file name for an ADR: the lowercased practice
// id followed by a slug of the title.
func (a ADR) Filename() string {
	return strings.ToLower(a.PracticeID) + "-" + slug(a.Title) + ".md"
}

func slug(s string) string {
	var b strings.Builder
	dash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WriteADRs writes one markdown file per ADR into dir plus a README.md
// index grouped by pillar, creating dir as needed. The current date is
// stamped into each file.
func WriteADRs(adrs []ADR, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ADR directory: %w", err)
	}
	date := timeNow().UTC().Format("2006-01-02")

	for _, a := range adrs {
		content := injectDate(a.Body, date)
		path := filepath.Join(dir, a.Filename())
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write ADR %s: %w", a.PracticeID, err)
		}
	}
	index := renderIndex(adrs, date)
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(index), 0o644); err != nil {
		return fmt.Errorf("write ADR index: %w", err)
	}
	return nil
}

// injectDate adds the date line right after the title heading.
func injectDate(body, date string) string {
	title, rest, ok := strings.Cut(body, "\n\n")
	if !ok {
		return body
	}
	return title + "\n\nDate: " + date + "\n\n" + rest
}

func renderIndex(adrs []ADR, date string) string {
	var b strings.Builder
	b.WriteString("# Architecture Decision Records\n\n")
	fmt.Fprintf(&b, "Generated %s. Records are ordered by priority within each pillar.\n", date)

	for _, p := range knowledge.PillarOrder {
		var section []ADR
		for _, a := range adrs {
			if a.Pillar == p {
				section = append(section, a)
			}
		}
		if len(section) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", p)
		for _, a := range section {
			fmt.Fprintf(&b, "- [%s: %s](%s) (score %d, %s, %s)\n",
				a.PracticeID, a.Title, a.Filename(), a.Score, a.Quadrant, a.Status)
		}
	}
	return b.String()
}
