// Package transform provides the graph transformations that turn a freshly
// built [graph.Graph] into a properly layered one.
//
// # Level Assignment
//
// [AssignLevels] computes a longest-path layering of the hierarchy
// sub-graph. Leaves (classes nothing inherits from) get level 0 and each
// parent sits one level above its highest child:
//
//	Dog -> Mammal -> Animal
//	Cat -> Mammal
//	Fish -----------> Animal
//
//	level 2: Animal
//	level 1: Mammal
//	level 0: Dog Cat Fish
//
// If the hierarchy contains a cycle, AssignLevels returns a
// [errors.CyclicHierarchyError] naming the shapes on one cycle and leaves
// the graph unleveled.
//
// # Virtual Nodes
//
// [InsertVirtualNodes] breaks every hierarchy link spanning more than one
// level into a chain of single-level segments:
//
//	Before: Fish (0) -> Animal (2)
//	After:  Fish -> v1 (1) -> Animal
//
// The hierarchy link itself is kept so its caller reference can be routed
// later; [graph.Graph.Chain] returns its virtual nodes.
//
// # Initial Order
//
// [InitialOrder] seeds each level's order by walking segments breadth-first
// from the hierarchy's roots, so crossing reduction starts from a
// deterministic arrangement that already groups siblings.
//
// # Usage
//
//	if err := transform.AssignLevels(g); err != nil {
//	    return err
//	}
//	virtual, err := transform.InsertVirtualNodes(g)
//	...
//	transform.InitialOrder(g)
//
// or simply:
//
//	virtual, err := transform.Prepare(g, nil)
package transform
