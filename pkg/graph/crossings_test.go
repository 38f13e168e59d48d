package graph

import "testing"

func crossGraph(t *testing.T) (*Graph, []NodeID, []NodeID) {
	t.Helper()
	// Level 0: a b, level 1: x y with a->y and b->x (one crossing).
	g := New()
	a := g.AddRealNode(box("a"))
	b := g.AddRealNode(box("b"))
	x := g.AddRealNode(box("x"))
	y := g.AddRealNode(box("y"))
	g.SetLevels(map[NodeID]int{a: 0, b: 0, x: 1, y: 1})
	g.AddSegment(a, y)
	g.AddSegment(b, x)
	return g, []NodeID{a, b}, []NodeID{x, y}
}

func TestCountLevelCrossings(t *testing.T) {
	g, lower, upper := crossGraph(t)

	if got := CountLevelCrossings(g, lower, upper); got != 1 {
		t.Errorf("CountLevelCrossings() = %d, want 1", got)
	}
	swapped := []NodeID{upper[1], upper[0]}
	if got := CountLevelCrossings(g, lower, swapped); got != 0 {
		t.Errorf("CountLevelCrossings(swapped) = %d, want 0", got)
	}
	if got := CountLevelCrossings(g, nil, upper); got != 0 {
		t.Errorf("CountLevelCrossings(empty) = %d, want 0", got)
	}
}

func TestCountLevelCrossingsSharedEndpoints(t *testing.T) {
	// a fans out to x and y; b also points at y. No crossings possible.
	g := New()
	a := g.AddRealNode(box("a"))
	b := g.AddRealNode(box("b"))
	x := g.AddRealNode(box("x"))
	y := g.AddRealNode(box("y"))
	g.SetLevels(map[NodeID]int{a: 0, b: 0, x: 1, y: 1})
	g.AddSegment(a, x)
	g.AddSegment(a, y)
	g.AddSegment(b, y)
	g.AddSegment(b, y)

	if got := CountLevelCrossings(g, []NodeID{a, b}, []NodeID{x, y}); got != 0 {
		t.Errorf("CountLevelCrossings() = %d, want 0", got)
	}
	if got := CountLevelCrossings(g, []NodeID{b, a}, []NodeID{x, y}); got != 2 {
		t.Errorf("CountLevelCrossings(reversed) = %d, want 2", got)
	}
}

func TestCountCrossings(t *testing.T) {
	g, _, _ := crossGraph(t)
	if got := CountCrossings(g); got != 1 {
		t.Errorf("CountCrossings() = %d, want 1", got)
	}
	if got := CountCrossings(New()); got != 0 {
		t.Errorf("CountCrossings(empty) = %d, want 0", got)
	}
}
