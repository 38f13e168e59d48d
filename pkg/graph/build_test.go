package graph

import (
	"testing"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
)

func box(id string) *diagram.Box { return &diagram.Box{ID: id, Width: 100, Height: 50} }

func conn(from, to *diagram.Box, kind diagram.LinkKind) *diagram.Connector {
	return &diagram.Connector{From: from, To: to, LinkKind: kind}
}

func TestBuild(t *testing.T) {
	animal, dog, cat, owner := box("Animal"), box("Dog"), box("Cat"), box("Owner")
	d := &diagram.Diagram{
		Boxes: []*diagram.Box{animal, dog, cat},
		Connectors: []*diagram.Connector{
			conn(dog, animal, diagram.LinkInheritance),
			conn(cat, animal, diagram.LinkInterface),
			conn(owner, dog, diagram.LinkAssociation),
		},
	}

	g, err := Build(d.Shapes(), d.Links())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if g.NodeCount() != 4 {
		t.Fatalf("NodeCount() = %d, want 4", g.NodeCount())
	}
	wantOrder := []string{"Animal", "Dog", "Cat", "Owner"}
	for i, n := range g.Nodes() {
		if n.Label() != wantOrder[i] {
			t.Errorf("node %d = %s, want %s", i, n.Label(), wantOrder[i])
		}
		if n.Level != Unleveled {
			t.Errorf("node %s level = %d, want Unleveled", n.Label(), n.Level)
		}
	}

	a, _ := g.Lookup("Animal")
	dg, _ := g.Lookup("Dog")
	o, _ := g.Lookup("Owner")

	if got := g.Children(a); len(got) != 2 {
		t.Errorf("Children(Animal) = %v, want 2 children", got)
	}
	if got := g.Parents(dg); len(got) != 1 || got[0] != a {
		t.Errorf("Parents(Dog) = %v, want [Animal]", got)
	}
	if got := g.Neighbors(o); len(got) != 1 || got[0] != dg {
		t.Errorf("Neighbors(Owner) = %v, want [Dog]", got)
	}
	if g.InHierarchy(o) {
		t.Error("Owner should not be in the hierarchy")
	}

	kinds := []LinkKind{LinkHierarchy, LinkHierarchy, LinkNonHierarchy}
	for i, l := range g.Links() {
		if l.Kind != kinds[i] {
			t.Errorf("link %d kind = %v, want %v", i, l.Kind, kinds[i])
		}
		if l.Ref == nil {
			t.Errorf("link %d lost its external reference", i)
		}
	}
}

func TestBuildDeduplicatesShapes(t *testing.T) {
	a, b := box("A"), box("B")
	// A second handle with the same identity must map to the same node.
	aAgain := box("A")
	links := []diagram.Link{
		conn(a, b, diagram.LinkInheritance),
		conn(aAgain, b, diagram.LinkAggregation),
		conn(b, a, diagram.LinkComposition),
	}

	g, err := Build([]diagram.Shape{a}, links)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestBuildClassification(t *testing.T) {
	tests := []struct {
		name string
		kind diagram.LinkKind
		self bool
		want LinkKind
	}{
		{"inheritance", diagram.LinkInheritance, false, LinkHierarchy},
		{"interface", diagram.LinkInterface, false, LinkHierarchy},
		{"association", diagram.LinkAssociation, false, LinkNonHierarchy},
		{"aggregation", diagram.LinkAggregation, false, LinkNonHierarchy},
		{"composition", diagram.LinkComposition, false, LinkNonHierarchy},
		{"unknown", diagram.LinkKind(42), false, LinkNonHierarchy},
		{"self inheritance", diagram.LinkInheritance, true, LinkNonHierarchy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := box("A"), box("B")
			to := b
			if tt.self {
				to = a
			}
			g, err := Build(nil, []diagram.Link{conn(a, to, tt.kind)})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := g.Link(0).Kind; got != tt.want {
				t.Errorf("kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSelfLinkHasNoNeighbors(t *testing.T) {
	a := box("A")
	g, err := Build(nil, []diagram.Link{conn(a, a, diagram.LinkAssociation)})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := g.Neighbors(0); len(got) != 0 {
		t.Errorf("Neighbors(A) = %v, want none", got)
	}
	if len(g.HierarchyNodes()) != 0 {
		t.Errorf("HierarchyNodes() = %v, want none", g.HierarchyNodes())
	}
}

func TestBuildParallelHierarchyLinks(t *testing.T) {
	a, b := box("A"), box("B")
	g, err := Build(nil, []diagram.Link{
		conn(a, b, diagram.LinkInheritance),
		conn(a, b, diagram.LinkInterface),
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.LinkCount() != 2 {
		t.Errorf("LinkCount() = %d, want 2", g.LinkCount())
	}
	if got := g.Children(1); len(got) != 2 {
		t.Errorf("Children(B) = %v, want A twice", got)
	}
}

// typedNilLink returns a nil *diagram.Box as its destination.
type typedNilLink struct{ from *diagram.Box }

func (l typedNilLink) Source() diagram.Shape { return l.from }
func (l typedNilLink) Destination() diagram.Shape { return (*diagram.Box)(nil) }
func (l typedNilLink) Kind() diagram.LinkKind { return diagram.LinkInheritance }
func (l typedNilLink) SetPath(points []diagram.Point) {}

func TestBuildNilHandles(t *testing.T) {
	a := box("A")
	tests := []struct {
		name   string
		shapes []diagram.Shape
		links  []diagram.Link
	}{
		{"nil shape", []diagram.Shape{nil}, nil},
		{"nil link", nil, []diagram.Link{nil}},
		{"nil endpoint", nil, []diagram.Link{&diagram.Connector{From: a}}},
		{"typed nil shape", []diagram.Shape{(*diagram.Box)(nil)}, nil},
		{"typed nil link", nil, []diagram.Link{(*diagram.Connector)(nil)}},
		{"typed nil endpoint", nil, []diagram.Link{typedNilLink{from: a}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.shapes, tt.links)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Build() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	g, err := Build(nil, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.NodeCount() != 0 || g.LinkCount() != 0 || g.LevelCount() != 0 {
		t.Errorf("empty build produced %d nodes, %d links, %d levels", g.NodeCount(), g.LinkCount(), g.LevelCount())
	}
}
