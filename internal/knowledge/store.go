package knowledge

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
)

// Store is the loaded, immutable knowledge base. It keeps the stable
// dataset load order plus lookup indices by id, pillar, risk, and lens,
// and a weighted keyword index over titles and descriptions.
type Store struct {
	practices []*BestPractice // stable load order
	byID      map[string]*BestPractice
	byPillar  map[Pillar][]*BestPractice
	byRisk    map[Risk][]*BestPractice
	byLens    map[Lens][]*BestPractice

	// keyword index: token -> practice id -> weight
	// (title tokens weight 2, description tokens weight 1).
	keywords map[string]map[string]int

	// adjacency is the symmetric relation graph: if A lists B in its
	// related ids, both A->B and B->A are present.
	adjacency map[string]map[string]bool

	// dangling records related ids that reference practices absent
	// from the loaded set. Advisory only — never a load failure.
	dangling []string
}

const (
	titleWeight       = 2
	descriptionWeight = 1
)

// Load reads every *.json file under each source (each file holding an
// array of practice records), validates ids and enums, and builds all
// indices. Later sources extend earlier ones; ids must stay unique
// across the whole set. A malformed file or a duplicate id is a
// *DataLoadError; dangling related ids are collected as warnings and
// logged, not failed.
func Load(sources ...fs.FS) (*Store, error) {
	s := &Store{
		byID:      make(map[string]*BestPractice),
		byPillar:  make(map[Pillar][]*BestPractice),
		byRisk:    make(map[Risk][]*BestPractice),
		byLens:    make(map[Lens][]*BestPractice),
		keywords:  make(map[string]map[string]int),
		adjacency: make(map[string]map[string]bool),
	}

	for _, fsys := range sources {
		var files []string
		err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && path.Ext(p) == ".json" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, &DataLoadError{Source: ".", Err: err}
		}
		// Walk order is lexical per directory, but sort the full list
		// per source so the stable load order never depends on the fs
		// implementation.
		sort.Strings(files)

		for _, file := range files {
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, &DataLoadError{Source: file, Err: err}
			}
			var records []BestPractice
			if err := json.Unmarshal(data, &records); err != nil {
				return nil, &DataLoadError{Source: file, Err: err}
			}
			for i := range records {
				bp := &records[i]
				if err := s.add(bp); err != nil {
					return nil, &DataLoadError{Source: file, Err: err}
				}
			}
		}
	}

	s.buildGraph()

	for _, ref := range s.dangling {
		slog.Warn("dangling related id", "ref", ref)
	}

	return s, nil
}

// add validates a single record and inserts it into every index.
func (s *Store) add(bp *BestPractice) error {
	if bp.ID == "" {
		return fmt.Errorf("practice with empty id (title %q)", bp.Title)
	}
	if _, dup := s.byID[bp.ID]; dup {
		return fmt.Errorf("duplicate practice id %q", bp.ID)
	}
	if !validPillars[bp.Pillar] {
		return fmt.Errorf("practice %s: unknown pillar %q", bp.ID, bp.Pillar)
	}
	if !validRisks[bp.Risk] {
		return fmt.Errorf("practice %s: unknown risk %q", bp.ID, bp.Risk)
	}
	if bp.Lens == "" {
		bp.Lens = LensFramework
	}

	s.practices = append(s.practices, bp)
	s.byID[bp.ID] = bp
	s.byPillar[bp.Pillar] = append(s.byPillar[bp.Pillar], bp)
	s.byRisk[bp.Risk] = append(s.byRisk[bp.Risk], bp)
	s.byLens[bp.Lens] = append(s.byLens[bp.Lens], bp)

	s.index(bp.ID, bp.Title, titleWeight)
	s.index(bp.ID, bp.Description, descriptionWeight)

	return nil
}

// index adds every token of text to the keyword index with the given weight.
func (s *Store) index(id, text string, weight int) {
	for _, tok := range Tokenize(text) {
		m, ok := s.keywords[tok]
		if !ok {
			m = make(map[string]int)
			s.keywords[tok] = m
		}
		m[id] += weight
	}
}

// buildGraph derives the symmetric adjacency from related ids. Related
// is treated as reciprocal even when only one side lists the edge.
func (s *Store) buildGraph() {
	link := func(a, b string) {
		m, ok := s.adjacency[a]
		if !ok {
			m = make(map[string]bool)
			s.adjacency[a] = m
		}
		m[b] = true
	}
	for _, bp := range s.practices {
		for _, rel := range bp.RelatedIDs {
			if _, ok := s.byID[rel]; !ok {
				s.dangling = append(s.dangling, fmt.Sprintf("%s -> %s", bp.ID, rel))
				continue
			}
			link(bp.ID, rel)
			link(rel, bp.ID)
		}
	}
}

// Get returns the practice with the given id, or ErrNotFound.
func (s *Store) Get(id string) (*BestPractice, error) {
	bp, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return bp, nil
}

// All returns every loaded practice in stable load order.
// The returned slice must not be mutated.
func (s *Store) All() []*BestPractice {
	return s.practices
}

// ByPillars returns practices for the given pillars, stable load order
// within each pillar, pillars in the order given.
func (s *Store) ByPillars(pillars []Pillar) []*BestPractice {
	var out []*BestPractice
	for _, p := range pillars {
		out = append(out, s.byPillar[p]...)
	}
	return out
}

// Pillars returns per-pillar practice counts in canonical order.
func (s *Store) Pillars() []PillarCount {
	out := make([]PillarCount, 0, len(PillarOrder))
	for _, p := range PillarOrder {
		out = append(out, PillarCount{Pillar: p, Count: len(s.byPillar[p])})
	}
	return out
}

// Lenses returns the loaded lens names sorted alphabetically.
func (s *Store) Lenses() []Lens {
	out := make([]Lens, 0, len(s.byLens))
	for l := range s.byLens {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// hasLens reports whether the lens exists as a loaded data partition.
func (s *Store) hasLens(l Lens) bool {
	_, ok := s.byLens[l]
	return ok
}

// DanglingRefs returns the unresolved related-id references recorded
// at load time.
func (s *Store) DanglingRefs() []string {
	return s.dangling
}

// Len returns the number of loaded practices.
func (s *Store) Len() int { return len(s.practices) }

// Tokenize lowercases text and splits it on non-alphanumeric runes.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
