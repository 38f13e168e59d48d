package graph

import "slices"

// CountCrossings returns the total number of segment crossings between all
// pairs of adjacent levels in their current order.
func CountCrossings(g *Graph) int {
	crossings := 0
	for l := 0; l+1 < g.LevelCount(); l++ {
		crossings += CountLevelCrossings(g, g.Level(l), g.Level(l+1))
	}
	return crossings
}

// CountLevelCrossings counts segment crossings between a level and the level
// directly above it using a Fenwick tree (binary indexed tree), in
// O(E log V) where E is the number of segments between the levels and V the
// size of the upper level.
//
// Two segments (a1,b1) and (a2,b2) cross if and only if:
//
//	pos(a1) < pos(a2) AND pos(b1) > pos(b2)
//
// which is an inversion in the sequence of upper positions once segments are
// sorted by lower position. Parallel segments never cross each other.
func CountLevelCrossings(g *Graph, lower, upper []NodeID) int {
	if len(lower) == 0 || len(upper) == 0 {
		return 0
	}

	upperPos := PosMap(upper)

	type segment struct{ lower, upper int }
	segs := make([]segment, 0, len(lower)*2)
	for i, id := range lower {
		for _, up := range g.Upper(id) {
			if pos, ok := upperPos[up]; ok {
				segs = append(segs, segment{i, pos})
			}
		}
	}
	if len(segs) < 2 {
		return 0
	}

	slices.SortFunc(segs, func(a, b segment) int {
		if a.lower != b.lower {
			return a.lower - b.lower
		}
		return a.upper - b.upper
	})

	fenwick := make([]int, len(upper)+1)
	crossings, total := 0, 0
	for _, s := range segs {
		// segments seen so far ending at or left of s.upper
		lessOrEqual := 0
		for q := s.upper + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := s.upper + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
