package placement

import "github.com/matzehuels/umlayout/pkg/graph"

// Spacing holds the distances used to place nodes, in pixels.
type Spacing struct {
	HorizontalGap   float64 // between neighbours in a level or row
	VerticalGap     float64 // between levels and between non-hierarchy rows
	NonHierarchyGap float64 // between the hierarchy and the first non-hierarchy row
	Margin          float64 // left and top offset of the drawing
	MaxWidth        float64 // right edge non-hierarchy rows wrap at
}

// geometry is the vertical extent of each level.
type geometry struct {
	y      []float64 // top edge per level
	height []float64 // tallest real node per level
	bottom float64   // bottom edge of the last level, Margin when there are none
}

func levelGeometry(g *graph.Graph, s Spacing) geometry {
	n := g.LevelCount()
	geo := geometry{y: make([]float64, n), height: make([]float64, n), bottom: s.Margin}
	y := s.Margin
	for l := range n {
		h := 0.0
		for _, id := range g.Level(l) {
			if node := g.Node(id); !node.IsVirtual() {
				h = max(h, node.Height)
			}
		}
		geo.y[l], geo.height[l] = y, h
		geo.bottom = y + h
		y += h + s.VerticalGap
	}
	return geo
}
