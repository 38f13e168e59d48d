// Package diagram defines the capability interfaces the layout engine uses to
// read and update externally owned UML diagram elements.
//
// # Overview
//
// The engine never depends on a concrete shape class. It only calls the
// operations described by [Shape] and [Link]:
//
//	type Shape interface {
//	    Identity() string
//	    Position() Point
//	    SetPosition(Point)
//	    Size() (w, h float64)
//	}
//
//	type Link interface {
//	    Source() Shape
//	    Destination() Shape
//	    Kind() LinkKind
//	    SetPath([]Point)
//	}
//
// For hierarchy kinds ([LinkInheritance], [LinkInterface]) the source is the
// child (subclass or implementor) and the destination is the parent.
//
// # In-Memory Diagrams
//
// [Box], [Connector] and [Diagram] are plain implementations of the
// interfaces used by the command-line tool, the HTTP host and tests. They can
// be read from and written to a small JSON interchange document with
// [ReadJSON] and [WriteJSON]:
//
//	{
//	  "shapes": [
//	    {"id": "Animal", "width": 120, "height": 60},
//	    {"id": "Dog", "width": 100, "height": 60}
//	  ],
//	  "links": [
//	    {"source": "Dog", "destination": "Animal", "kind": "inheritance"}
//	  ]
//	}
//
// Shapes without an id are given a random UUID so that the document can be
// written back and laid out again with stable identities. Link kinds that are
// not recognized are kept verbatim and treated as non-hierarchical.
package diagram
