package ordering_test

import (
	"fmt"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/graph"
	"github.com/matzehuels/umlayout/pkg/graph/transform"
	"github.com/matzehuels/umlayout/pkg/ordering"
)

func ExampleBarycenter() {
	shape, widget := &diagram.Box{ID: "Shape"}, &diagram.Box{ID: "Widget"}
	circle, button := &diagram.Box{ID: "Circle"}, &diagram.Box{ID: "Button"}

	// Children listed before their parents, crossed.
	d := &diagram.Diagram{
		Boxes: []*diagram.Box{button, circle, shape, widget},
		Connectors: []*diagram.Connector{
			{From: circle, To: shape, LinkKind: diagram.LinkInheritance},
			{From: button, To: widget, LinkKind: diagram.LinkInheritance},
		},
	}
	g, _ := graph.Build(d.Shapes(), d.Links())
	_ = transform.AssignLevels(g)
	_, _ = transform.InsertVirtualNodes(g)
	fmt.Println("before:", graph.CountCrossings(g))

	res, _ := ordering.Barycenter{Passes: 8}.Reduce(g)
	fmt.Println("after:", res.Crossings, "in", res.Passes, "pass")
	// Output:
	// before: 1
	// after: 0 in 1 pass
}
