package graph

import (
	"testing"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
)

// leveledGraph builds child -> parent links for each pair and levels them by hand.
func leveledGraph(t *testing.T, levels map[string]int, pairs ...[2]string) *Graph {
	t.Helper()
	g := New()
	for _, p := range pairs {
		from := g.AddRealNode(box(p[0]))
		to := g.AddRealNode(box(p[1]))
		if _, err := g.AddLink(Link{Kind: LinkHierarchy, From: from, To: to}); err != nil {
			t.Fatal(err)
		}
	}
	m := make(map[NodeID]int)
	for id, lvl := range levels {
		n, ok := g.Lookup(id)
		if !ok {
			t.Fatalf("unknown node %s", id)
		}
		m[n] = lvl
	}
	g.SetLevels(m)
	return g
}

func TestAddLinkErrors(t *testing.T) {
	g := New()
	a := g.AddRealNode(box("A"))

	if _, err := g.AddLink(Link{Kind: LinkHierarchy, From: a, To: 7}); !errors.Is(err, errors.ErrCodeInvariantViolation) {
		t.Errorf("unknown endpoint error = %v, want INVARIANT_VIOLATION", err)
	}
	if _, err := g.AddLink(Link{Kind: LinkHierarchy, From: a, To: a}); !errors.Is(err, errors.ErrCodeInvariantViolation) {
		t.Errorf("self hierarchy error = %v, want INVARIANT_VIOLATION", err)
	}
}

func TestSetLevelsBuckets(t *testing.T) {
	g := leveledGraph(t, map[string]int{"A": 0, "B": 1, "C": 0}, [2]string{"A", "B"}, [2]string{"C", "B"})

	if g.LevelCount() != 2 {
		t.Fatalf("LevelCount() = %d, want 2", g.LevelCount())
	}
	if got := g.Level(0); len(got) != 2 {
		t.Errorf("Level(0) = %v, want 2 nodes", got)
	}
	c, _ := g.Lookup("C")
	if g.Node(c).Order != 1 {
		t.Errorf("C order = %d, want 1", g.Node(c).Order)
	}
	if g.Level(5) != nil || g.Level(-1) != nil {
		t.Error("out of range levels should be nil")
	}
}

func TestSetLevelOrder(t *testing.T) {
	g := leveledGraph(t, map[string]int{"A": 0, "B": 1, "C": 0}, [2]string{"A", "B"}, [2]string{"C", "B"})
	a, _ := g.Lookup("A")
	b, _ := g.Lookup("B")
	c, _ := g.Lookup("C")

	if err := g.SetLevelOrder(0, []NodeID{c, a}); err != nil {
		t.Fatalf("SetLevelOrder() error: %v", err)
	}
	if g.Node(c).Order != 0 || g.Node(a).Order != 1 {
		t.Errorf("orders = C:%d A:%d, want C:0 A:1", g.Node(c).Order, g.Node(a).Order)
	}

	tests := []struct {
		name  string
		level int
		order []NodeID
	}{
		{"out of range", 3, nil},
		{"wrong length", 0, []NodeID{a}},
		{"foreign node", 0, []NodeID{a, b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.SetLevelOrder(tt.level, tt.order); !errors.Is(err, errors.ErrCodeInvariantViolation) {
				t.Errorf("SetLevelOrder() error = %v, want INVARIANT_VIOLATION", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g := leveledGraph(t, map[string]int{"A": 0, "B": 1}, [2]string{"A", "B"})
		g.AddSegment(0, 1)
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() error: %v", err)
		}
	})

	t.Run("skipped level", func(t *testing.T) {
		g := leveledGraph(t, map[string]int{"A": 0, "B": 2}, [2]string{"A", "B"})
		if err := g.Validate(); !errors.Is(err, errors.ErrCodeInvariantViolation) {
			t.Errorf("Validate() error = %v, want INVARIANT_VIOLATION", err)
		}
	})

	t.Run("long segment", func(t *testing.T) {
		g := leveledGraph(t, map[string]int{"A": 0, "B": 1, "C": 2}, [2]string{"A", "B"}, [2]string{"B", "C"})
		a, _ := g.Lookup("A")
		c, _ := g.Lookup("C")
		g.AddSegment(a, c)
		if err := g.Validate(); !errors.Is(err, errors.ErrCodeInvariantViolation) {
			t.Errorf("Validate() error = %v, want INVARIANT_VIOLATION", err)
		}
	})

	t.Run("stale order", func(t *testing.T) {
		g := leveledGraph(t, map[string]int{"A": 0, "C": 0, "B": 1}, [2]string{"A", "B"}, [2]string{"C", "B"})
		g.Node(0).Order = 5
		if err := g.Validate(); !errors.Is(err, errors.ErrCodeInvariantViolation) {
			t.Errorf("Validate() error = %v, want INVARIANT_VIOLATION", err)
		}
	})
}

func TestChainAndPath(t *testing.T) {
	g := leveledGraph(t, map[string]int{"A": 0, "B": 3}, [2]string{"A", "B"})
	v1 := g.AddVirtualNode(1, 0)
	v2 := g.AddVirtualNode(2, 0)
	g.SetChain(0, []NodeID{v1, v2})
	g.AddSegment(0, v1)
	g.AddSegment(v1, v2)
	g.AddSegment(v2, 1)

	if g.VirtualCount() != 2 {
		t.Errorf("VirtualCount() = %d, want 2", g.VirtualCount())
	}
	path := g.Path(0)
	want := []NodeID{0, v1, v2, 1}
	if len(path) != len(want) {
		t.Fatalf("Path() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("Path()[%d] = %d, want %d", i, path[i], want[i])
		}
	}
	if !g.Node(v1).IsVirtual() || g.Node(v1).Shape != nil {
		t.Error("virtual node should have no shape")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestRoots(t *testing.T) {
	g, err := Build(nil, []diagram.Link{
		conn(box("A"), box("B"), diagram.LinkInheritance),
		conn(box("B"), box("C"), diagram.LinkInheritance),
		conn(box("D"), box("C"), diagram.LinkInterface),
		conn(box("E"), box("A"), diagram.LinkAssociation),
	})
	if err != nil {
		t.Fatal(err)
	}
	roots := g.Roots()
	if len(roots) != 1 || g.Node(roots[0]).Label() != "C" {
		t.Errorf("Roots() = %v, want [C]", roots)
	}
	if len(g.HierarchyNodes()) != 4 {
		t.Errorf("HierarchyNodes() = %v, want 4 nodes", g.HierarchyNodes())
	}
}
