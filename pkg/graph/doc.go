// Package graph provides the layered graph model used by the hierarchical
// layout engine.
//
// # Overview
//
// A [Graph] owns every node and link of one layout run in dense arrays
// indexed by [NodeID] and [LinkID]. Nodes either wrap a caller-owned
// [diagram.Shape] ([NodeKindReal]) or are synthesized by the layout pipeline
// to break long edges ([NodeKindVirtual]). Nothing in the graph hashes or
// compares caller shapes except [Graph.AddRealNode], which deduplicates by
// [diagram.Shape.Identity].
//
// # Link Kinds
//
//   - [LinkHierarchy]: inheritance or interface realization, From is the
//     child and To is the parent
//   - [LinkNonHierarchy]: association, aggregation, composition or any
//     unknown kind; undirected for layout
//   - [LinkVirtual]: one segment of a decomposed hierarchy link, Owner names
//     the hierarchy link it belongs to
//
// # Indexes
//
// [Build] fills three adjacency indexes: [Graph.Children] and [Graph.Parents]
// over hierarchy links and [Graph.Neighbors] over non-hierarchy links. Once
// levels are assigned, the segment indexes [Graph.Lower] and [Graph.Upper]
// connect each node to its neighbours exactly one level below and above.
// They are what crossing reduction and the position fixer walk.
//
// # Levels
//
// Level 0 holds the hierarchy's leaves (classes nothing inherits from).
// Each parent sits at least one level above all of its children. Nodes that
// never take part in a hierarchy link keep [Unleveled].
//
// # Crossings
//
// [CountCrossings] and [CountLevelCrossings] count segment crossings between
// adjacent levels with a Fenwick tree in O(E log V).
package graph
