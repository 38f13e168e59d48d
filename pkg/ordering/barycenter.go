package ordering

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/umlayout/pkg/graph"
)

// Barycenter reorders levels with alternating barycenter sweeps.
type Barycenter struct {
	// Passes caps the number of down/up sweep pairs. Zero or negative means
	// DefaultPasses.
	Passes int
}

// Reduce runs at most b.Passes passes over g and leaves g in the ordering with
// the fewest crossings seen, preferring the earliest on ties. It stops early
// when a pass leaves every level unchanged or no crossings remain.
//
// Reduce refuses graphs that fail [graph.Graph.Validate], returning its
// INVARIANT_VIOLATION error.
func (b Barycenter) Reduce(g *graph.Graph) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, fmt.Errorf("crossing reduction: %w", err)
	}

	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	best := g.Levels()
	bestCrossings := graph.CountCrossings(g)
	res := Result{Crossings: bestCrossings}
	if g.LevelCount() < 2 || bestCrossings == 0 {
		return res, nil
	}

	top := g.LevelCount() - 1
	for range passes {
		changed := false
		for l := 1; l <= top; l++ {
			c, err := sweep(g, l, g.Lower)
			if err != nil {
				return res, err
			}
			changed = changed || c
		}
		for l := top - 1; l >= 0; l-- {
			c, err := sweep(g, l, g.Upper)
			if err != nil {
				return res, err
			}
			changed = changed || c
		}
		res.Passes++

		if c := graph.CountCrossings(g); c < bestCrossings {
			best, bestCrossings = g.Levels(), c
		}
		if !changed || bestCrossings == 0 {
			break
		}
	}

	for l, order := range best {
		if err := g.SetLevelOrder(l, order); err != nil {
			return res, err
		}
	}
	res.Crossings = bestCrossings
	return res, nil
}

// sweep sorts level l by the mean order of each node's neighbours in the
// reference level and reports whether the order changed.
func sweep(g *graph.Graph, l int, neighbours func(graph.NodeID) []graph.NodeID) (bool, error) {
	level := g.Level(l)
	bary := make([]float64, len(level))
	for i, id := range level {
		ns := neighbours(id)
		if len(ns) == 0 {
			bary[i] = float64(i)
			continue
		}
		sum := 0
		for _, n := range ns {
			sum += g.Node(n).Order
		}
		bary[i] = float64(sum) / float64(len(ns))
	}

	idx := make([]int, len(level))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(bary[a], bary[b]) })

	changed := false
	order := make([]graph.NodeID, len(level))
	for i, j := range idx {
		order[i] = level[j]
		changed = changed || i != j
	}
	if !changed {
		return false, nil
	}
	return true, g.SetLevelOrder(l, order)
}
