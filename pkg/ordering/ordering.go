package ordering

import "github.com/matzehuels/umlayout/pkg/graph"

// DefaultPasses is the pass cap used when Barycenter.Passes is not positive.
const DefaultPasses = 8

// Orderer is an interface for within-level ordering algorithms.
// An orderer rearranges the nodes of each level in place to reduce link
// crossings. Levels and segment adjacency must already be built.
type Orderer interface {
	Reduce(g *graph.Graph) (Result, error)
}

// Result reports what an Orderer did.
type Result struct {
	Passes    int // sweeps run, each one down-sweep plus one up-sweep
	Crossings int // crossings in the final ordering
}
