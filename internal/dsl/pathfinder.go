package dsl

import (
	"sort"

	"github.com/sifthq/sift/internal/ast"
)

// findPath resolves the ordered chain of index links connecting root to the
// target index, discovering each index's outgoing links through the supplied
// topology collaborator.
//
// The search is breadth-first, so join depth is minimized. Among equal-length
// paths the choice is deterministic: each index's links are visited in
// ascending (target index, left field, right field) order and the first
// discovery of an index wins. A visited set keeps cyclic topologies from
// looping.
//
// An empty path means target == root. A target unreachable from root is a
// topology defect and fails compilation.
func findPath(root ast.IndexLink, target string, links func(string) ([]ast.IndexLink, error)) ([]ast.IndexLink, error) {
	if root.QualifiedIndex == target {
		return nil, nil
	}

	type entry struct {
		index string
		path  []ast.IndexLink
	}

	visited := map[string]bool{root.QualifiedIndex: true}
	queue := []entry{{index: root.QualifiedIndex}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		discovered, err := links(current.index)
		if err != nil {
			return nil, &CollaboratorError{Stage: "topology", Err: err}
		}

		// Sort a copy; the topology snapshot is never mutated.
		outgoing := make([]ast.IndexLink, len(discovered))
		copy(outgoing, discovered)
		sortLinks(outgoing)

		for _, link := range outgoing {
			if visited[link.QualifiedIndex] {
				continue
			}
			visited[link.QualifiedIndex] = true

			path := make([]ast.IndexLink, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, link)

			if link.QualifiedIndex == target {
				return path, nil
			}
			queue = append(queue, entry{index: link.QualifiedIndex, path: path})
		}
	}

	return nil, &PathNotFoundError{Root: root.QualifiedIndex, Target: target}
}

// sortLinks orders links for the deterministic tie-break.
func sortLinks(links []ast.IndexLink) {
	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.QualifiedIndex != b.QualifiedIndex {
			return a.QualifiedIndex < b.QualifiedIndex
		}
		if a.LeftField != b.LeftField {
			return a.LeftField < b.LeftField
		}
		return a.RightField < b.RightField
	})
}
