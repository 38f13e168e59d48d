package transform

import (
	"fmt"

	"github.com/matzehuels/umlayout/pkg/graph"
)

// InitialOrder seeds the order of every level by walking segments
// breadth-first from the hierarchy roots (nodes without parents, in creation
// order) toward the leaves. Each node takes the next slot of its level the
// first time it is reached. Leveled nodes the walk never reaches keep their
// relative order after the visited ones.
func InitialOrder(g *graph.Graph) error {
	orders := make([][]graph.NodeID, g.LevelCount())
	visited := make(map[graph.NodeID]bool, g.NodeCount())

	visit := func(id graph.NodeID) {
		visited[id] = true
		lvl := g.Node(id).Level
		orders[lvl] = append(orders[lvl], id)
	}

	queue := make([]graph.NodeID, 0, g.NodeCount())
	for _, root := range g.Roots() {
		if visited[root] {
			continue
		}
		visit(root)
		queue = append(queue, root)
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, next := range g.Lower(curr) {
				if !visited[next] {
					visit(next)
					queue = append(queue, next)
				}
			}
		}
	}

	for l := range orders {
		for _, id := range g.Level(l) {
			if !visited[id] {
				visit(id)
			}
		}
		if err := g.SetLevelOrder(l, orders[l]); err != nil {
			return err
		}
	}
	return nil
}

// Stage names passed to the Prepare callback.
const (
	StageLevels  = "levels"
	StageVirtual = "virtual"
	StageOrder   = "initial-order"
)

// Prepare runs [AssignLevels], [InsertVirtualNodes] and [InitialOrder] in
// order and returns the number of virtual nodes inserted. done, if not nil,
// is called with the stage name after each step succeeds.
func Prepare(g *graph.Graph, done func(stage string)) (int, error) {
	if done == nil {
		done = func(string) {}
	}
	if err := AssignLevels(g); err != nil {
		return 0, fmt.Errorf("assign levels: %w", err)
	}
	done(StageLevels)

	virtual, err := InsertVirtualNodes(g)
	if err != nil {
		return virtual, fmt.Errorf("insert virtual nodes: %w", err)
	}
	done(StageVirtual)

	if err := InitialOrder(g); err != nil {
		return virtual, fmt.Errorf("initial order: %w", err)
	}
	done(StageOrder)
	return virtual, nil
}
