package transform

import (
	"slices"

	"github.com/matzehuels/umlayout/pkg/graph"
)

// findCycle returns the nodes of one child->parent cycle among candidates,
// in traversal order. It uses depth-first search with white/gray/black
// coloring; the first edge reaching a gray node closes the cycle.
//
// Candidates must contain at least one full cycle. Searching starts from
// candidates in order, so the result is deterministic.
func findCycle(g *graph.Graph, candidates []graph.NodeID) []graph.NodeID {
	const (
		white = iota
		gray
		black
	)

	inSet := make(map[graph.NodeID]bool, len(candidates))
	for _, id := range candidates {
		inSet[id] = true
	}

	color := make(map[graph.NodeID]int, len(candidates))
	var stack, cycle []graph.NodeID

	var dfs func(id graph.NodeID) bool
	dfs = func(id graph.NodeID) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, parent := range g.Parents(id) {
			if !inSet[parent] {
				continue
			}
			switch color[parent] {
			case white:
				if dfs(parent) {
					return true
				}
			case gray:
				cycle = slices.Clone(stack[slices.Index(stack, parent):])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range candidates {
		if color[id] == white && dfs(id) {
			break
		}
	}
	return cycle
}
