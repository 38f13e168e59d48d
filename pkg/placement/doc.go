// Package placement converts an ordered, layered graph into pixel
// coordinates.
//
// Two stages run here. [PlaceNonHierarchy] packs the nodes that never joined
// the hierarchy into rows below it, one connected component at a time.
// [FixPositions] turns (level, order) into (x, y) for every hierarchy node,
// merges the non-hierarchy positions, and routes every caller link through
// node centres. Neither touches caller shapes; the returned [Placement] is
// written back with [Placement.Apply].
//
// Coordinates grow right and down. Level 0 (the leaf classes) is the top row
// and each higher level sits below the previous one:
//
//	y(0) = Margin
//	y(l) = y(l-1) + levelHeight(l-1) + VerticalGap
//
// where levelHeight is the tallest real node on the level. Within a level x
// starts at Margin and advances by width + HorizontalGap; virtual nodes have
// zero width but still take a slot.
package placement
