package diagram

import "strings"

// Point is a position in diagram coordinates (pixels, y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LinkKind classifies a link between two shapes.
type LinkKind int

const (
	// LinkOther is any relationship the engine does not recognize.
	LinkOther LinkKind = iota
	// LinkInheritance is a generalization (subclass to superclass).
	LinkInheritance
	// LinkInterface is an interface realization (implementor to interface).
	LinkInterface
	// LinkAssociation is a plain association.
	LinkAssociation
	// LinkAggregation is a shared aggregation.
	LinkAggregation
	// LinkComposition is a composite aggregation.
	LinkComposition
)

var kindNames = map[LinkKind]string{
	LinkOther:       "other",
	LinkInheritance: "inheritance",
	LinkInterface:   "interface",
	LinkAssociation: "association",
	LinkAggregation: "aggregation",
	LinkComposition: "composition",
}

// String returns the lower-case name of the kind.
func (k LinkKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "other"
}

// IsHierarchy reports whether links of this kind take part in leveling.
func (k LinkKind) IsHierarchy() bool {
	return k == LinkInheritance || k == LinkInterface
}

// ParseLinkKind maps a kind name to a LinkKind. Matching is case-insensitive.
// Unknown names map to LinkOther.
func ParseLinkKind(s string) LinkKind {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, v := range kindNames {
		if v == name {
			return k
		}
	}
	switch name {
	case "generalization", "extends":
		return LinkInheritance
	case "realization", "implements":
		return LinkInterface
	}
	return LinkOther
}

// Shape is an externally owned diagram node the engine can position.
type Shape interface {
	// Identity returns a stable identifier, unique within one diagram.
	Identity() string
	Position() Point
	SetPosition(p Point)
	Size() (w, h float64)
}

// Link is an externally owned diagram edge the engine can route.
type Link interface {
	Source() Shape
	Destination() Shape
	Kind() LinkKind
	// SetPath replaces the link's route with the given points, first point
	// at the source end.
	SetPath(points []Point)
}
