// Package knowledge holds the static Well-Architected best practice
// dataset: the data model, the loader with its lookup indices, the
// query engine, and the relationship graph derived from related ids.
//
// The dataset is loaded once at process start and is read-only from
// then on, so concurrent reads need no locking.
package knowledge

import "fmt"

// --- Pillar enum ---

// Pillar is one of the six top-level Well-Architected categories.
type Pillar string

const (
	OperationalExcellence Pillar = "OPERATIONAL_EXCELLENCE"
	Security              Pillar = "SECURITY"
	Reliability           Pillar = "RELIABILITY"
	PerformanceEfficiency Pillar = "PERFORMANCE_EFFICIENCY"
	CostOptimization      Pillar = "COST_OPTIMIZATION"
	Sustainability        Pillar = "SUSTAINABILITY"
)

// PillarOrder is the canonical display and iteration order.
var PillarOrder = []Pillar{
	OperationalExcellence,
	Security,
	Reliability,
	PerformanceEfficiency,
	CostOptimization,
	Sustainability,
}

// validPillars is the set of allowed pillar values.
var validPillars = map[Pillar]bool{
	OperationalExcellence: true,
	Security:              true,
	Reliability:           true,
	PerformanceEfficiency: true,
	CostOptimization:      true,
	Sustainability:        true,
}

// ParsePillar validates a pillar name. Unknown values return a
// *ValidationError so callers get a structured failure, not a silent skip.
func ParsePillar(s string) (Pillar, error) {
	p := Pillar(s)
	if !validPillars[p] {
		return "", &ValidationError{
			Field:   "pillar",
			Value:   s,
			Allowed: "OPERATIONAL_EXCELLENCE, SECURITY, RELIABILITY, PERFORMANCE_EFFICIENCY, COST_OPTIMIZATION, SUSTAINABILITY",
		}
	}
	return p, nil
}

// ParsePillars validates a list of pillar names. An empty list means
// "all pillars" and returns PillarOrder.
func ParsePillars(names []string) ([]Pillar, error) {
	if len(names) == 0 {
		out := make([]Pillar, len(PillarOrder))
		copy(out, PillarOrder)
		return out, nil
	}
	out := make([]Pillar, 0, len(names))
	for _, n := range names {
		p, err := ParsePillar(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// --- Risk enum ---

// Risk is the severity assigned to a practice when it is not implemented.
type Risk string

const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
	RiskLow    Risk = "LOW"
)

// validRisks is the set of allowed risk values.
var validRisks = map[Risk]bool{
	RiskHigh:   true,
	RiskMedium: true,
	RiskLow:    true,
}

// ParseRisk validates a risk level.
func ParseRisk(s string) (Risk, error) {
	r := Risk(s)
	if !validRisks[r] {
		return "", &ValidationError{Field: "risk", Value: s, Allowed: "HIGH, MEDIUM, LOW"}
	}
	return r, nil
}

// --- Lens ---

// Lens is a specialization overlay over the framework for a workload
// type. FRAMEWORK is the base lens; the set is extensible — new lenses
// appear by loading their data files, so validation is against the
// loaded set, not a fixed enum.
type Lens string

const (
	LensFramework    Lens = "FRAMEWORK"
	LensGenerativeAI Lens = "GENERATIVE_AI"
)

// --- BestPractice ---

// BestPractice is one atomic, identified recommendation within a
// pillar/lens. Immutable after load.
type BestPractice struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Outcome           string   `json:"outcome"`
	Pillar            Pillar   `json:"pillar"`
	Lens              Lens     `json:"lens"`
	Area              []string `json:"area"`
	Risk              Risk     `json:"risk"`
	RelatedIDs        []string `json:"related_ids"`
	RequiresUserInput bool     `json:"requires_user_input"`
	HRef              string   `json:"href"`

	// Assessment questions presented when the practice cannot be
	// auto-assessed from the workload description alone.
	Questions []string `json:"questions"`

	// Ordered implementation steps used for fix guidance and the
	// implementation section of generated ADRs.
	ImplementationGuidance []string `json:"implementation_guidance"`
}

func (bp *BestPractice) String() string {
	return fmt.Sprintf("%s: %s", bp.ID, bp.Title)
}

// PillarCount pairs a pillar with the number of loaded practices.
type PillarCount struct {
	Pillar Pillar `json:"pillar"`
	Count  int    `json:"count"`
}
