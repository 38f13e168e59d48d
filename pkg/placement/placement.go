package placement

import (
	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/graph"
)

// Placement is the computed geometry of one layout run. Nothing in it is
// visible to the caller until Apply.
type Placement struct {
	// Nodes holds the top-left corner of real nodes and the bend point of
	// virtual nodes.
	Nodes map[graph.NodeID]diagram.Point

	// Paths holds the route of every link that carries a caller reference.
	Paths map[graph.LinkID][]diagram.Point

	// Width and Height are the extent of the drawing including the margin.
	Width, Height float64
}

// FixPositions computes positions for every leveled node, merges the
// non-hierarchy positions in extra, and routes every caller link through
// node centres.
//
// Decomposed hierarchy links run child, virtual bend points, parent. All
// other links get a straight two-point path. FixPositions is pure.
func FixPositions(g *graph.Graph, s Spacing, extra map[graph.NodeID]diagram.Point) *Placement {
	p := &Placement{
		Nodes: make(map[graph.NodeID]diagram.Point, g.NodeCount()),
		Paths: make(map[graph.LinkID][]diagram.Point),
	}

	geo := levelGeometry(g, s)
	for l := range g.LevelCount() {
		x := s.Margin
		for _, id := range g.Level(l) {
			n := g.Node(id)
			if n.IsVirtual() {
				p.Nodes[id] = diagram.Point{X: x, Y: geo.y[l] + geo.height[l]/2}
			} else {
				p.Nodes[id] = diagram.Point{X: x, Y: geo.y[l]}
			}
			x += n.Width + s.HorizontalGap
		}
	}
	for id, pt := range extra {
		p.Nodes[id] = pt
	}

	for _, n := range g.Nodes() {
		if n.IsVirtual() {
			continue
		}
		pt := p.Nodes[n.ID]
		p.Width = max(p.Width, pt.X+n.Width+s.Margin)
		p.Height = max(p.Height, pt.Y+n.Height+s.Margin)
	}

	for _, l := range g.Links() {
		if l.Ref == nil {
			continue
		}
		var ids []graph.NodeID
		if l.Kind == graph.LinkHierarchy {
			ids = g.Path(l.ID)
		} else {
			ids = []graph.NodeID{l.From, l.To}
		}
		path := make([]diagram.Point, len(ids))
		for i, id := range ids {
			path[i] = p.center(g.Node(id))
		}
		p.Paths[l.ID] = path
	}
	return p
}

func (p *Placement) center(n *graph.Node) diagram.Point {
	pt := p.Nodes[n.ID]
	return diagram.Point{X: pt.X + n.Width/2, Y: pt.Y + n.Height/2}
}

// Apply writes every real node position onto its shape and every path onto
// its link. It is the only step of a layout run that mutates caller state.
func (p *Placement) Apply(g *graph.Graph) {
	for _, n := range g.Nodes() {
		if n.Shape == nil {
			continue
		}
		if pt, ok := p.Nodes[n.ID]; ok {
			n.Shape.SetPosition(pt)
		}
	}
	for id, path := range p.Paths {
		g.Link(id).Ref.SetPath(path)
	}
}
