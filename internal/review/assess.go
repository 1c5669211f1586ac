package review

import (
	"strings"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// Status is the outcome of assessing one practice against a workload.
type Status string

const (
	// StatusCompliant means the workload context already covers the
	// practice's concern.
	StatusCompliant Status = "COMPLIANT"

	// StatusNonCompliant means nothing in the context indicates the
	// practice is addressed.
	StatusNonCompliant Status = "NON_COMPLIANT"

	// StatusNeedsReview means answers were collected and a human has
	// to judge them.
	StatusNeedsReview Status = "NEEDS_REVIEW"

	// StatusIncomplete means required questions were never answered
	// and the review was forced through anyway.
	StatusIncomplete Status = "INCOMPLETE"
)

// compliance threshold: this many distinct practice keywords must
// appear in the workload context.
const minKeywordHits = 2

// Assess derives a status for one practice. Practices that collected
// answers are deferred to human judgment; auto-assessable ones use
// keyword overlap between the workload context and the practice's
// title and area labels.
func Assess(bp *knowledge.BestPractice, workloadContext string, answers map[string]string, pending bool) Status {
	if pending {
		return StatusIncomplete
	}
	if len(answers) > 0 {
		return StatusNeedsReview
	}

	hits := make(map[string]bool)
	ctxTokens := make(map[string]bool)
	for _, tok := range knowledge.Tokenize(workloadContext) {
		ctxTokens[tok] = true
	}
	for _, tok := range knowledge.Tokenize(bp.Title) {
		if ctxTokens[tok] {
			hits[tok] = true
		}
	}
	for _, area := range bp.Area {
		for _, tok := range knowledge.Tokenize(area) {
			if ctxTokens[tok] {
				hits[tok] = true
			}
		}
	}
	if len(hits) >= minKeywordHits {
		return StatusCompliant
	}
	return StatusNonCompliant
}

// Summary renders a one-line human explanation of a status.
func (st Status) Summary() string {
	switch st {
	case StatusCompliant:
		return "workload context indicates this practice is addressed"
	case StatusNonCompliant:
		return "no evidence in the workload context that this practice is addressed"
	case StatusNeedsReview:
		return "answers were collected and need human review"
	case StatusIncomplete:
		return "assessment questions were not answered"
	}
	return strings.ToLower(string(st))
}
