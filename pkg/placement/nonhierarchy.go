package placement

import (
	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/graph"
)

// Components groups unleveled real nodes into connected components over
// non-hierarchy links. Components and their members are in discovery order,
// seeded by node creation order.
func Components(g *graph.Graph) [][]graph.NodeID {
	seen := make(map[graph.NodeID]bool)
	var comps [][]graph.NodeID
	for _, n := range g.Nodes() {
		if n.IsVirtual() || n.Leveled() || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		comp := []graph.NodeID{n.ID}
		for i := 0; i < len(comp); i++ {
			for _, next := range g.Neighbors(comp[i]) {
				if !seen[next] && !g.Node(next).Leveled() {
					seen[next] = true
					comp = append(comp, next)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// PlaceNonHierarchy returns top-left positions for every real node outside
// the hierarchy. Components are packed left to right in rows; the first row
// starts NonHierarchyGap below the hierarchy's bottom edge, or at Margin when
// nothing is leveled. A component that does not fit before MaxWidth starts a
// new row, and a component wider than a whole row wraps node by node.
//
// Hierarchy nodes are neither read for position nor moved.
func PlaceNonHierarchy(g *graph.Graph, s Spacing) map[graph.NodeID]diagram.Point {
	comps := Components(g)
	if len(comps) == 0 {
		return nil
	}

	y := s.Margin
	if g.LevelCount() > 0 {
		y = levelGeometry(g, s).bottom + s.NonHierarchyGap
	}

	r := &rows{s: s, x: s.Margin, y: y}
	pos := make(map[graph.NodeID]diagram.Point)
	for _, comp := range comps {
		if r.x > s.Margin && r.x+r.width(g, comp) > s.MaxWidth {
			r.wrap()
		}
		for _, id := range comp {
			n := g.Node(id)
			if r.x > s.Margin && r.x+n.Width > s.MaxWidth {
				r.wrap()
			}
			pos[id] = diagram.Point{X: r.x, Y: r.y}
			r.x += n.Width + s.HorizontalGap
			r.height = max(r.height, n.Height)
		}
	}
	return pos
}

// rows is the packing cursor.
type rows struct {
	s      Spacing
	x, y   float64
	height float64 // tallest node in the current row
}

func (r *rows) wrap() {
	r.x = r.s.Margin
	r.y += r.height + r.s.VerticalGap
	r.height = 0
}

func (r *rows) width(g *graph.Graph, comp []graph.NodeID) float64 {
	w := 0.0
	for i, id := range comp {
		if i > 0 {
			w += r.s.HorizontalGap
		}
		w += g.Node(id).Width
	}
	return w
}
