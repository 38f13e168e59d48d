package graph

import (
	"slices"
	"strconv"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
)

// NodeID is a stable handle into a Graph's node array.
type NodeID int

// LinkID is a stable handle into a Graph's link array.
type LinkID int

// NoLink marks the absence of an owner link.
const NoLink LinkID = -1

// Unleveled is the Level of a node no hierarchy link touches.
const Unleveled = -1

// NodeKind distinguishes between nodes wrapping a shape and synthetic nodes.
type NodeKind int

const (
	// NodeKindReal wraps one caller-owned shape.
	NodeKindReal NodeKind = iota
	// NodeKindVirtual is inserted to break a hierarchy link spanning
	// several levels.
	NodeKindVirtual
)

// LinkKind distinguishes hierarchy, non-hierarchy and virtual links.
type LinkKind int

const (
	LinkHierarchy LinkKind = iota
	LinkNonHierarchy
	LinkVirtual
)

func (k LinkKind) String() string {
	switch k {
	case LinkHierarchy:
		return "hierarchy"
	case LinkNonHierarchy:
		return "non-hierarchy"
	case LinkVirtual:
		return "virtual"
	}
	return "unknown"
}

// Node is a vertex of the layout graph.
type Node struct {
	ID   NodeID
	Kind NodeKind

	// Shape is the caller's shape for real nodes and nil for virtual ones.
	Shape  diagram.Shape
	Width  float64
	Height float64

	Level int // Unleveled until assigned
	Order int // position within the level

	// Owner is the hierarchy link a virtual node was inserted for.
	Owner LinkID
}

// IsVirtual reports whether the node was synthesized by the pipeline.
func (n *Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Leveled reports whether the node has been assigned a level.
func (n *Node) Leveled() bool { return n.Level >= 0 }

// Label returns the shape identity for real nodes and a synthetic name for
// virtual nodes. It is meant for logs and error messages.
func (n *Node) Label() string {
	if n.Shape != nil {
		return n.Shape.Identity()
	}
	return "virtual#" + strconv.Itoa(int(n.ID))
}

// Link is an edge of the layout graph.
type Link struct {
	ID   LinkID
	Kind LinkKind

	// From and To are child and parent for hierarchy links, the lower and
	// upper endpoint for virtual links, and arbitrary for non-hierarchy links.
	From NodeID
	To   NodeID

	// Ref is the caller's link; nil for virtual links.
	Ref diagram.Link

	// Owner is the decomposed hierarchy link for virtual links.
	Owner LinkID
}

// Graph is the layered graph for a single layout run.
//
// The zero value is not usable - use New.
// Graph is not safe for concurrent use.
type Graph struct {
	nodes []*Node
	links []*Link
	index map[string]NodeID

	children  [][]NodeID
	parents   [][]NodeID
	neighbors [][]NodeID
	lower     [][]NodeID
	upper     [][]NodeID

	chains map[LinkID][]NodeID
	levels [][]NodeID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:  make(map[string]NodeID),
		chains: make(map[LinkID][]NodeID),
	}
}

// AddRealNode returns the node wrapping s, creating it on first sight.
// Shapes are deduplicated by Identity.
func (g *Graph) AddRealNode(s diagram.Shape) NodeID {
	if id, ok := g.index[s.Identity()]; ok {
		return id
	}
	w, h := s.Size()
	id := g.addNode(&Node{
		Kind:   NodeKindReal,
		Shape:  s,
		Width:  max(w, 0),
		Height: max(h, 0),
		Level:  Unleveled,
		Owner:  NoLink,
	})
	g.index[s.Identity()] = id
	return id
}

// AddVirtualNode creates a virtual node on the given level for the owner
// link and appends it to that level.
func (g *Graph) AddVirtualNode(level int, owner LinkID) NodeID {
	id := g.addNode(&Node{
		Kind:  NodeKindVirtual,
		Level: level,
		Owner: owner,
	})
	g.appendToLevel(level, id)
	return id
}

func (g *Graph) addNode(n *Node) NodeID {
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.children = append(g.children, nil)
	g.parents = append(g.parents, nil)
	g.neighbors = append(g.neighbors, nil)
	g.lower = append(g.lower, nil)
	g.upper = append(g.upper, nil)
	return n.ID
}

// AddLink adds l and updates the adjacency index for its kind.
// It returns an INVARIANT_VIOLATION error if an endpoint does not exist or
// a hierarchy link points from a node to itself.
func (g *Graph) AddLink(l Link) (LinkID, error) {
	if !g.has(l.From) || !g.has(l.To) {
		return NoLink, errors.Invariant("link %d->%d references unknown node", l.From, l.To)
	}
	if l.Kind == LinkHierarchy && l.From == l.To {
		return NoLink, errors.Invariant("hierarchy self-link on node %d", l.From)
	}

	l.ID = LinkID(len(g.links))
	if l.Kind != LinkVirtual {
		l.Owner = NoLink
	}
	link := l
	g.links = append(g.links, &link)

	switch l.Kind {
	case LinkHierarchy:
		g.children[l.To] = append(g.children[l.To], l.From)
		g.parents[l.From] = append(g.parents[l.From], l.To)
	case LinkNonHierarchy:
		if l.From != l.To {
			g.neighbors[l.From] = append(g.neighbors[l.From], l.To)
			g.neighbors[l.To] = append(g.neighbors[l.To], l.From)
		}
	}
	return link.ID, nil
}

// AddSegment records that lower and upper are connected across one level
// boundary. Parallel segments are kept; they weigh the barycenter.
func (g *Graph) AddSegment(lower, upper NodeID) {
	g.upper[lower] = append(g.upper[lower], upper)
	g.lower[upper] = append(g.lower[upper], lower)
}

// SetChain records the virtual nodes of a decomposed hierarchy link, ordered
// from the child end to the parent end.
func (g *Graph) SetChain(owner LinkID, chain []NodeID) {
	g.chains[owner] = slices.Clone(chain)
}

// Chain returns the virtual nodes of a decomposed hierarchy link, or nil if
// the link connects adjacent levels directly.
func (g *Graph) Chain(owner LinkID) []NodeID { return g.chains[owner] }

// VirtualCount returns the number of virtual nodes in the graph.
func (g *Graph) VirtualCount() int {
	n := 0
	for _, c := range g.chains {
		n += len(c)
	}
	return n
}

func (g *Graph) has(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) }

// Node returns the node with the given id. The pointer stays valid for the
// graph's lifetime. Node panics on an unknown id.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// Link returns the link with the given id. Link panics on an unknown id.
func (g *Graph) Link(id LinkID) *Link { return g.links[id] }

// Lookup returns the node wrapping the shape with the given identity.
func (g *Graph) Lookup(identity string) (NodeID, bool) {
	id, ok := g.index[identity]
	return id, ok
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Links returns all links in creation order.
func (g *Graph) Links() []*Link { return g.links }

// NodeCount returns the number of nodes, real and virtual.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links, including virtual segments.
func (g *Graph) LinkCount() int { return len(g.links) }

// Children returns the hierarchy children of id (subclasses, implementors).
// The returned slice must not be modified.
func (g *Graph) Children(id NodeID) []NodeID { return g.children[id] }

// Parents returns the hierarchy parents of id. The returned slice must not be
// modified.
func (g *Graph) Parents(id NodeID) []NodeID { return g.parents[id] }

// Neighbors returns the non-hierarchy neighbours of id. The returned slice
// must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID { return g.neighbors[id] }

// Lower returns the segment neighbours of id on level Level-1.
func (g *Graph) Lower(id NodeID) []NodeID { return g.lower[id] }

// Upper returns the segment neighbours of id on level Level+1.
func (g *Graph) Upper(id NodeID) []NodeID { return g.upper[id] }

// InHierarchy reports whether any hierarchy link touches id.
func (g *Graph) InHierarchy(id NodeID) bool {
	return len(g.children[id]) > 0 || len(g.parents[id]) > 0
}

// HierarchyNodes returns every real node touched by a hierarchy link, in
// creation order.
func (g *Graph) HierarchyNodes() []NodeID {
	var ids []NodeID
	for _, n := range g.nodes {
		if !n.IsVirtual() && g.InHierarchy(n.ID) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Roots returns hierarchy nodes without parents, in creation order.
func (g *Graph) Roots() []NodeID {
	var ids []NodeID
	for _, id := range g.HierarchyNodes() {
		if len(g.parents[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetLevels assigns levels to nodes and rebuilds the level buckets in node
// creation order. Nodes missing from levels become Unleveled.
func (g *Graph) SetLevels(levels map[NodeID]int) {
	g.levels = nil
	for _, n := range g.nodes {
		lvl, ok := levels[n.ID]
		if !ok {
			n.Level = Unleveled
			continue
		}
		n.Level = lvl
		g.appendToLevel(lvl, n.ID)
	}
}

func (g *Graph) appendToLevel(level int, id NodeID) {
	for len(g.levels) <= level {
		g.levels = append(g.levels, nil)
	}
	g.nodes[id].Order = len(g.levels[level])
	g.levels[level] = append(g.levels[level], id)
}

// LevelCount returns the number of levels.
func (g *Graph) LevelCount() int { return len(g.levels) }

// Level returns the nodes of level l in their current order. The returned
// slice must not be modified; use SetLevelOrder.
func (g *Graph) Level(l int) []NodeID {
	if l < 0 || l >= len(g.levels) {
		return nil
	}
	return g.levels[l]
}

// Levels returns a copy of every level's current order.
func (g *Graph) Levels() [][]NodeID {
	out := make([][]NodeID, len(g.levels))
	for i, lvl := range g.levels {
		out[i] = slices.Clone(lvl)
	}
	return out
}

// SetLevelOrder replaces the order of level l and updates each node's Order.
// order must be a permutation of the level's current nodes.
func (g *Graph) SetLevelOrder(l int, order []NodeID) error {
	if l < 0 || l >= len(g.levels) {
		return errors.Invariant("level %d out of range [0,%d)", l, len(g.levels))
	}
	if len(order) != len(g.levels[l]) {
		return errors.Invariant("level %d: order has %d nodes, level has %d", l, len(order), len(g.levels[l]))
	}
	for _, id := range order {
		if !g.has(id) || g.nodes[id].Level != l {
			return errors.Invariant("level %d: node %d does not belong to it", l, id)
		}
	}
	g.levels[l] = slices.Clone(order)
	for i, id := range g.levels[l] {
		g.nodes[id].Order = i
	}
	return nil
}

// Validate checks the layering invariants crossing reduction relies on. It
// is meaningful once virtual nodes have been inserted:
//
//  1. Every node in a level bucket is leveled, on that level, at its Order
//     index, and appears in exactly one bucket
//  2. Every segment connects nodes exactly one level apart
//  3. Every hierarchy link is either a single segment or a chain whose
//     consecutive nodes are one level apart
//
// It returns an INVARIANT_VIOLATION error describing the first problem found.
func (g *Graph) Validate() error {
	seen := make([]bool, len(g.nodes))
	for l, lvl := range g.levels {
		for i, id := range lvl {
			n := g.nodes[id]
			if !n.Leveled() {
				return errors.Invariant("node %s in level %d is unleveled", n.Label(), l)
			}
			if n.Level != l {
				return errors.Invariant("node %s in level %d has level %d", n.Label(), l, n.Level)
			}
			if n.Order != i {
				return errors.Invariant("node %s at index %d has order %d", n.Label(), i, n.Order)
			}
			if seen[id] {
				return errors.Invariant("node %s appears in more than one level slot", n.Label())
			}
			seen[id] = true
		}
	}
	for _, n := range g.nodes {
		if n.Leveled() && !seen[n.ID] {
			return errors.Invariant("node %s has level %d but is not in it", n.Label(), n.Level)
		}
		for _, up := range g.upper[n.ID] {
			if g.nodes[up].Level != n.Level+1 {
				return errors.Invariant("segment %s->%s spans levels %d->%d",
					n.Label(), g.nodes[up].Label(), n.Level, g.nodes[up].Level)
			}
		}
	}
	for _, l := range g.links {
		if l.Kind != LinkHierarchy {
			continue
		}
		path := g.Path(l.ID)
		for i := 1; i < len(path); i++ {
			if g.nodes[path[i]].Level != g.nodes[path[i-1]].Level+1 {
				return errors.Invariant("hierarchy link %d skips a level between %s and %s",
					l.ID, g.nodes[path[i-1]].Label(), g.nodes[path[i]].Label())
			}
		}
	}
	return nil
}

// Path returns the nodes a link passes through: child, virtual nodes, parent
// for hierarchy links, and both endpoints otherwise.
func (g *Graph) Path(id LinkID) []NodeID {
	l := g.links[id]
	path := make([]NodeID, 0, len(g.chains[id])+2)
	path = append(path, l.From)
	path = append(path, g.chains[id]...)
	return append(path, l.To)
}

// PosMap creates a position lookup from a level order.
func PosMap(ids []NodeID) map[NodeID]int {
	m := make(map[NodeID]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
