// Package smart synthesizes SMART (Specific, Measurable, Achievable,
// Relevant, Time-bound) recommendations from best practices and
// caller-supplied workload context.
package smart

import (
	"fmt"
	"strings"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// Effort is the achievability bucket for a recommendation.
type Effort string

const (
	EffortLow    Effort = "LOW"
	EffortMedium Effort = "MEDIUM"
	EffortHigh   Effort = "HIGH"
)

// Solution is a structured SMART recommendation for one practice.
type Solution struct {
	PracticeID string `json:"practice_id"`
	Pillar     string `json:"pillar"`
	Risk       string `json:"risk"`
	Specific   string `json:"specific"`
	Measurable string `json:"measurable"`
	Achievable Effort `json:"achievable"`
	Relevant   string `json:"relevant"`
	TimeBound  string `json:"time_bound"`
}

// pillarVerbs gives the action framing per pillar for the specific
// outcome statement.
var pillarVerbs = map[knowledge.Pillar]string{
	knowledge.Security:              "to strengthen the security posture",
	knowledge.Reliability:           "to improve resilience",
	knowledge.PerformanceEfficiency: "to improve performance",
	knowledge.CostOptimization:      "to reduce cost",
	knowledge.OperationalExcellence: "to improve operations",
	knowledge.Sustainability:        "to reduce environmental impact",
}

// deadlines maps risk to the time-bound bucket.
var deadlines = map[knowledge.Risk]string{
	knowledge.RiskHigh:   "within 30 days",
	knowledge.RiskMedium: "this quarter",
	knowledge.RiskLow:    "backlog",
}

// Generate builds the SMART recommendation for one practice against
// the caller's workload context. Pure and deterministic.
func Generate(bp *knowledge.BestPractice, workloadContext string) Solution {
	return Solution{
		PracticeID: bp.ID,
		Pillar:     string(bp.Pillar),
		Risk:       string(bp.Risk),
		Specific:   specific(bp),
		Measurable: measurable(bp),
		Achievable: EstimateEffort(bp),
		Relevant:   relevant(bp, workloadContext),
		TimeBound:  deadlines[bp.Risk],
	}
}

func specific(bp *knowledge.BestPractice) string {
	return fmt.Sprintf("Implement %q %s: %s",
		bp.Title, pillarVerbs[bp.Pillar], bp.Description)
}

func measurable(bp *knowledge.BestPractice) string {
	if bp.Outcome != "" {
		return bp.Outcome
	}
	return fmt.Sprintf("compliance with %s verified", bp.ID)
}

// EstimateEffort buckets implementation effort: practices assessable
// without user input are quick to act on; high-risk practices that
// also need discovery are the heavy lifts.
func EstimateEffort(bp *knowledge.BestPractice) Effort {
	if !bp.RequiresUserInput {
		return EffortLow
	}
	if bp.Risk == knowledge.RiskHigh {
		return EffortHigh
	}
	return EffortMedium
}

func relevant(bp *knowledge.BestPractice, workloadContext string) string {
	pillar := titleCase(string(bp.Pillar))
	if strings.TrimSpace(workloadContext) == "" {
		return fmt.Sprintf("Addresses the %s pillar for this workload", pillar)
	}
	return fmt.Sprintf("Addresses the %s pillar for: %s", pillar, summarize(workloadContext))
}

// GenerateAll builds solutions for every practice, optionally keeping
// only quick wins: low effort with HIGH or MEDIUM risk impact.
func GenerateAll(practices []*knowledge.BestPractice, workloadContext string, quickWinsOnly bool) []Solution {
	out := make([]Solution, 0, len(practices))
	for _, bp := range practices {
		sol := Generate(bp, workloadContext)
		if quickWinsOnly && !isQuickWin(sol) {
			continue
		}
		out = append(out, sol)
	}
	return out
}

// isQuickWin: high impact, low effort.
func isQuickWin(s Solution) bool {
	return s.Achievable == EffortLow &&
		(s.Risk == string(knowledge.RiskHigh) || s.Risk == string(knowledge.RiskMedium))
}

// summarize truncates the caller context to one line for the
// relevance statement.
func summarize(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	const max = 120
	if len(line) > max {
		line = strings.TrimRight(line[:max], " ") + "..."
	}
	return line
}

// titleCase renders an enum value like PERFORMANCE_EFFICIENCY as
// "Performance Efficiency".
func titleCase(enum string) string {
	words := strings.Split(strings.ToLower(enum), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
