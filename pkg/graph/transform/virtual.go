package transform

import (
	"fmt"

	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/graph"
)

// InsertVirtualNodes breaks hierarchy links that span several levels into
// chains of single-level segments, and records a segment for every link that
// already connects adjacent levels.
//
// For a link from child (level c) to parent (level p) with p-c > 1, one
// [graph.NodeKindVirtual] node is added on each level c+1 .. p-1, connected
// by [graph.LinkVirtual] links owned by the original link:
//
//	Before: Fish (0) -> Animal (3)
//	After:  Fish -> v (1) -> v (2) -> Animal
//
// The original hierarchy link stays in the graph so its caller reference can
// be routed through the chain; only the segment adjacency
// ([graph.Graph.Lower], [graph.Graph.Upper]) skips it. Parallel hierarchy
// links each get their own chain.
//
// It returns the number of virtual nodes inserted, or an INVARIANT_VIOLATION
// error if a hierarchy link does not point strictly upward, which means
// levels were not assigned first.
func InsertVirtualNodes(g *graph.Graph) (int, error) {
	inserted := 0
	// Virtual links are appended while iterating; only walk the original ones.
	links := g.Links()
	for _, l := range links {
		if l.Kind != graph.LinkHierarchy {
			continue
		}
		child, parent := g.Node(l.From), g.Node(l.To)
		if !child.Leveled() || !parent.Leveled() || parent.Level <= child.Level {
			return inserted, errors.Invariant("hierarchy link %s->%s spans levels %d->%d",
				child.Label(), parent.Label(), child.Level, parent.Level)
		}

		if parent.Level == child.Level+1 {
			g.AddSegment(child.ID, parent.ID)
			continue
		}

		chain := make([]graph.NodeID, 0, parent.Level-child.Level-1)
		prev := child.ID
		for lvl := child.Level + 1; lvl < parent.Level; lvl++ {
			v := g.AddVirtualNode(lvl, l.ID)
			if err := addSegmentLink(g, prev, v, l.ID); err != nil {
				return inserted, err
			}
			chain = append(chain, v)
			prev = v
			inserted++
		}
		if err := addSegmentLink(g, prev, parent.ID, l.ID); err != nil {
			return inserted, err
		}
		g.SetChain(l.ID, chain)
	}
	return inserted, nil
}

func addSegmentLink(g *graph.Graph, lower, upper graph.NodeID, owner graph.LinkID) error {
	if _, err := g.AddLink(graph.Link{Kind: graph.LinkVirtual, From: lower, To: upper, Owner: owner}); err != nil {
		return fmt.Errorf("virtual segment for link %d: %w", owner, err)
	}
	g.AddSegment(lower, upper)
	return nil
}
