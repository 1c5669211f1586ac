package knowledge

import (
	"sort"
	"strings"
)

// SearchOptions holds the optional filters for Search. All supplied
// filters are combined with AND semantics.
type SearchOptions struct {
	Pillar  string
	Risk    string
	Lens    string
	Area    string
	Keyword string
}

// Search filters the knowledge base and, when a keyword is given,
// ranks the matches by relevance.
//
// Without a keyword, results keep the stable dataset load order. With
// a keyword, results are ordered by descending score (title matches
// count double), ties broken by id ascending, and zero-score practices
// are dropped. Unknown pillar/risk/lens values are a *ValidationError.
func (s *Store) Search(opts SearchOptions) ([]*BestPractice, error) {
	var (
		pillar Pillar
		risk   Risk
		err    error
	)
	if opts.Pillar != "" {
		if pillar, err = ParsePillar(opts.Pillar); err != nil {
			return nil, err
		}
	}
	if opts.Risk != "" {
		if risk, err = ParseRisk(opts.Risk); err != nil {
			return nil, err
		}
	}
	lens := Lens(opts.Lens)
	if opts.Lens != "" && !s.hasLens(lens) {
		loaded := s.Lenses()
		names := make([]string, len(loaded))
		for i, l := range loaded {
			names[i] = string(l)
		}
		return nil, &ValidationError{Field: "lens", Value: opts.Lens, Allowed: strings.Join(names, ", ")}
	}

	var results []*BestPractice
	for _, bp := range s.practices {
		if opts.Pillar != "" && bp.Pillar != pillar {
			continue
		}
		if opts.Risk != "" && bp.Risk != risk {
			continue
		}
		if opts.Lens != "" && bp.Lens != lens {
			continue
		}
		if opts.Area != "" && !matchArea(bp.Area, opts.Area) {
			continue
		}
		results = append(results, bp)
	}

	if opts.Keyword == "" {
		return results, nil
	}
	return s.rankByKeyword(results, opts.Keyword), nil
}

// matchArea reports whether the area filter appears as a substring of
// any of the practice's area labels (case-insensitive).
func matchArea(areas []string, filter string) bool {
	f := strings.ToLower(filter)
	for _, a := range areas {
		if strings.Contains(strings.ToLower(a), f) {
			return true
		}
	}
	return false
}

// rankByKeyword scores candidates against the keyword index and drops
// non-matches. Score = title-term matches x2 + description matches x1.
func (s *Store) rankByKeyword(candidates []*BestPractice, keyword string) []*BestPractice {
	terms := Tokenize(keyword)
	if len(terms) == 0 {
		return nil
	}

	scores := make(map[string]int)
	for _, term := range terms {
		for id, weight := range s.keywords[term] {
			scores[id] += weight
		}
	}

	var matched []*BestPractice
	for _, bp := range candidates {
		if scores[bp.ID] > 0 {
			matched = append(matched, bp)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		si, sj := scores[matched[i].ID], scores[matched[j].ID]
		if si != sj {
			return si > sj
		}
		return matched[i].ID < matched[j].ID
	})

	return matched
}

// Score exposes the keyword relevance score for a single practice.
// Used by tool handlers to annotate ranked results.
func (s *Store) Score(id, keyword string) int {
	total := 0
	for _, term := range Tokenize(keyword) {
		total += s.keywords[term][id]
	}
	return total
}
