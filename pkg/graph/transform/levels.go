package transform

import (
	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/graph"
)

// AssignLevels assigns a level to every node touched by a hierarchy link.
//
// AssignLevels uses a longest-path algorithm via topological sort (Kahn's
// algorithm) running from the leaves upward. Each node is placed one level
// above the highest of its children, so that:
//   - Nodes without children are at level 0
//   - Every parent is strictly above each of its children
//   - level(n) == 1 + max(level(child)) for every node with children
//
// Nodes with no hierarchy links stay [graph.Unleveled]. Existing levels are
// overwritten and the level buckets are rebuilt in node creation order.
//
// # Cycles
//
// Nodes on or above a cycle never run out of unprocessed children. When that
// happens AssignLevels returns a [errors.CyclicHierarchyError] listing the
// shapes on one cycle, and the graph's levels are left untouched.
//
// Time complexity is O(V + E) over the hierarchy sub-graph.
func AssignLevels(g *graph.Graph) error {
	nodes := g.HierarchyNodes()
	pending := make(map[graph.NodeID]int, len(nodes))
	levels := make(map[graph.NodeID]int, len(nodes))
	queue := make([]graph.NodeID, 0, len(nodes))

	for _, id := range nodes {
		pending[id] = len(g.Children(id))
		if pending[id] == 0 {
			levels[id] = 0
			queue = append(queue, id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++

		for _, parent := range g.Parents(curr) {
			if lvl := levels[curr] + 1; lvl > levels[parent] {
				levels[parent] = lvl
			}
			pending[parent]--
			if pending[parent] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	if processed < len(nodes) {
		stuck := make([]graph.NodeID, 0, len(nodes)-processed)
		for _, id := range nodes {
			if pending[id] > 0 {
				stuck = append(stuck, id)
			}
		}
		return cycleError(g, findCycle(g, stuck))
	}

	g.SetLevels(levels)
	return nil
}

func cycleError(g *graph.Graph, cycle []graph.NodeID) error {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = g.Node(id).Label()
	}
	return &errors.CyclicHierarchyError{Nodes: names}
}
