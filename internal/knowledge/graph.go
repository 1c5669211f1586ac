package knowledge

import (
	"fmt"
	"sort"
)

// DefaultRelatedDepth is the hop count used by the related-practices
// tool: direct neighbors only.
const DefaultRelatedDepth = 1

// Related traverses the symmetric relation graph breadth-first from
// id, returning every practice reachable within depth hops, excluding
// the start node. A visited set keeps cycles from expanding forever.
// Results are sorted by id for deterministic output.
func (s *Store) Related(id string, depth int) ([]*BestPractice, error) {
	if _, ok := s.byID[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if depth < 1 {
		depth = DefaultRelatedDepth
	}

	visited := map[string]bool{id: true}
	frontier := []string{id}

	var found []string
	for hop := 0; hop < depth && len(frontier) > 0; hop++ {
		var next []string
		for _, cur := range frontier {
			for neighbor := range s.adjacency[cur] {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				found = append(found, neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	sort.Strings(found)
	out := make([]*BestPractice, 0, len(found))
	for _, fid := range found {
		out = append(out, s.byID[fid])
	}
	return out, nil
}

// Degree returns the number of direct neighbors of id in the symmetric
// graph. Unknown ids have degree zero.
func (s *Store) Degree(id string) int {
	return len(s.adjacency[id])
}
