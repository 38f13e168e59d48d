// Package layout runs the hierarchical layout pipeline over caller-owned
// diagram shapes and links.
//
// # Pipeline
//
// A single [Engine.Run] performs, in order:
//
//  1. Build: one graph node per distinct shape, links split into hierarchy
//     (inheritance, interface) and non-hierarchy (everything else)
//  2. Levels: longest-path leveling of the hierarchy, failing with
//     [errors.CyclicHierarchyError] on a cycle
//  3. Virtual nodes: long hierarchy links broken into single-level segments
//  4. Ordering: barycenter crossing reduction with a bounded pass count
//  5. Non-hierarchy placement: remaining nodes packed in rows below
//  6. Position fixing: pixel coordinates and link routes computed
//  7. Write-back: positions and paths applied to the caller's objects
//
// Steps 1 to 6 never touch caller state. If any of them fails, or the context
// is cancelled before step 7, the diagram is left exactly as it was.
//
// # Usage
//
//	d, err := diagram.ReadJSON(r)
//	...
//	if err := layout.Layout(ctx, d.Shapes(), d.Links(), layout.Config{}); err != nil {
//	    return err
//	}
//
// For statistics and logging, construct an [Engine]:
//
//	eng := layout.New(layout.WithLogger(logger))
//	stats, err := eng.Run(ctx, d.Shapes(), d.Links(), cfg)
//	fmt.Println(stats.Levels, stats.Crossings)
//
// # Configuration
//
// Zero fields of [Config] take the documented defaults, so Config{} is a
// valid configuration. Negative gaps or pass counts are rejected with
// INVALID_CONFIG before any work is done.
package layout
