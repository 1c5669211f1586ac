package priority

import "github.com/ksuarez/archadvisor/internal/knowledge"

// Quadrant is an Eisenhower matrix bucket.
type Quadrant string

const (
	DoFirst   Quadrant = "DO_FIRST"  // urgent and important
	Schedule  Quadrant = "SCHEDULE"  // important, not urgent
	Delegate  Quadrant = "DELEGATE"  // urgent, not important
	Eliminate Quadrant = "ELIMINATE" // neither
)

// QuadrantOrder is the display order for matrix output.
var QuadrantOrder = []Quadrant{DoFirst, Schedule, Delegate, Eliminate}

// quadrantActions maps each quadrant to its action recommendation.
var quadrantActions = map[Quadrant]string{
	DoFirst:   "DO FIRST - Implement immediately",
	Schedule:  "SCHEDULE - Plan for implementation",
	Delegate:  "DELEGATE - Quick wins, automate if possible",
	Eliminate: "ELIMINATE - Consider if needed",
}

// Action returns the action recommendation for a quadrant.
func Action(q Quadrant) string { return quadrantActions[q] }

// wellConnected is the degree threshold above which a practice counts
// as structurally important in the classification table.
const wellConnected = 2

// Classify places a practice in a quadrant. Pure function of
// (risk, requiresUserInput, degree >= wellConnected):
//
//	HIGH   + no input needed          -> DO_FIRST
//	HIGH   + input needed + connected -> DO_FIRST
//	HIGH   + input needed + isolated  -> SCHEDULE
//	MEDIUM + connected                -> SCHEDULE
//	MEDIUM + isolated                 -> DELEGATE
//	LOW                               -> ELIMINATE
func (e *Engine) Classify(bp *knowledge.BestPractice) Quadrant {
	connected := e.store.Degree(bp.ID) >= wellConnected

	switch bp.Risk {
	case knowledge.RiskHigh:
		if !bp.RequiresUserInput || connected {
			return DoFirst
		}
		return Schedule
	case knowledge.RiskMedium:
		if connected {
			return Schedule
		}
		return Delegate
	default:
		return Eliminate
	}
}

// Matrix buckets every practice in the selected pillars into the four
// quadrants, preserving the stable dataset order within each bucket.
// An empty pillar list means all pillars.
func (e *Engine) Matrix(pillars []knowledge.Pillar) map[Quadrant][]*knowledge.BestPractice {
	if len(pillars) == 0 {
		pillars = knowledge.PillarOrder
	}

	matrix := make(map[Quadrant][]*knowledge.BestPractice, len(QuadrantOrder))
	for _, q := range QuadrantOrder {
		matrix[q] = nil
	}
	for _, bp := range e.store.ByPillars(pillars) {
		q := e.Classify(bp)
		matrix[q] = append(matrix[q], bp)
	}
	return matrix
}
