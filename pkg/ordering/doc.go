// Package ordering provides algorithms for determining the left-to-right
// arrangement of nodes within each level of a layered graph.
//
// # The Ordering Problem
//
// Once every hierarchy link spans exactly one level, the number of link
// crossings depends only on the order of nodes within each level. Finding an
// ordering with the minimum number of crossings is NP-hard even for two
// levels, so practical layouts use heuristics.
//
// # Barycenter Heuristic
//
// [Barycenter] implements the classic Sugiyama barycenter method. Each node is
// moved toward the average position of its neighbours in the adjacent level:
//
//  1. Down-sweep: for levels 1..max, sort by the mean order of the node's
//     [graph.Graph.Lower] neighbours
//  2. Up-sweep: for levels max-1..0, sort by the mean order of its
//     [graph.Graph.Upper] neighbours
//  3. Repeat until a pass changes nothing or the pass cap is reached
//  4. Restore the ordering with the fewest crossings seen
//
// Nodes without neighbours in the reference level keep their current index as
// barycenter, and ties keep their previous relative order, so the result is
// fully deterministic.
//
// # Usage
//
//	var orderer ordering.Orderer = ordering.Barycenter{Passes: 8}
//	res, err := orderer.Reduce(g)
//	fmt.Println(res.Passes, res.Crossings)
package ordering
