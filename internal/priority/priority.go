// Package priority ranks best practices by remediation urgency and
// buckets them into an Eisenhower matrix.
//
// The scoring weights are deliberate tunables, not settled law: risk
// dominates, graph degree and the need for user input act as
// tie-shifters.
package priority

import (
	"sort"
	"strconv"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// Scoring weights. score = riskFactor*riskWeight + degreeFactor*degree
// + inputBonus when the practice needs user input.
const (
	riskFactor   = 3
	degreeFactor = 1
	inputBonus   = 1
)

// riskWeights maps risk levels to their base weight.
var riskWeights = map[knowledge.Risk]int{
	knowledge.RiskHigh:   3,
	knowledge.RiskMedium: 2,
	knowledge.RiskLow:    1,
}

// validCounts is the set of allowed top-N sizes.
var validCounts = map[int]bool{3: true, 5: true, 10: true}

// ScoredPractice pairs a practice with its priority score.
type ScoredPractice struct {
	Practice *knowledge.BestPractice
	Score    int
}

// Engine computes priority rankings over a loaded knowledge store.
type Engine struct {
	store *knowledge.Store
}

// NewEngine creates an Engine over the given store.
func NewEngine(store *knowledge.Store) *Engine {
	return &Engine{store: store}
}

// Score computes the priority score for a single practice.
func (e *Engine) Score(bp *knowledge.BestPractice) int {
	score := riskFactor*riskWeights[bp.Risk] + degreeFactor*e.store.Degree(bp.ID)
	if bp.RequiresUserInput {
		score += inputBonus
	}
	return score
}

// Rank returns every practice in the selected pillars ordered by
// descending score, ties broken by id ascending. Deterministic for an
// unchanged dataset. An empty pillar list means all pillars.
func (e *Engine) Rank(pillars []knowledge.Pillar) []ScoredPractice {
	if len(pillars) == 0 {
		pillars = knowledge.PillarOrder
	}

	candidates := e.store.ByPillars(pillars)
	ranked := make([]ScoredPractice, 0, len(candidates))
	for _, bp := range candidates {
		ranked = append(ranked, ScoredPractice{Practice: bp, Score: e.Score(bp)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Practice.ID < ranked[j].Practice.ID
	})

	return ranked
}

// TopN returns the first count entries of Rank. count must be 3, 5, or
// 10; anything else is a *knowledge.ValidationError. Fewer matching
// practices than count returns just the matches, never padding.
func (e *Engine) TopN(pillars []knowledge.Pillar, count int) ([]ScoredPractice, error) {
	if !validCounts[count] {
		return nil, &knowledge.ValidationError{
			Field:   "count",
			Value:   strconv.Itoa(count),
			Allowed: "3, 5, 10",
		}
	}
	ranked := e.Rank(pillars)
	if len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked, nil
}
