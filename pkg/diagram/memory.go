package diagram

import "slices"

// Box is an in-memory [Shape].
type Box struct {
	ID     string
	Label  string
	X, Y   float64
	Width  float64
	Height float64
}

// Identity implements [Shape].
func (b *Box) Identity() string { return b.ID }

// Position implements [Shape].
func (b *Box) Position() Point { return Point{X: b.X, Y: b.Y} }

// SetPosition implements [Shape].
func (b *Box) SetPosition(p Point) { b.X, b.Y = p.X, p.Y }

// Size implements [Shape].
func (b *Box) Size() (float64, float64) { return b.Width, b.Height }

// Connector is an in-memory [Link] between two boxes.
type Connector struct {
	ID       string
	From     *Box
	To       *Box
	LinkKind LinkKind
	// KindName is the kind as written in the source document. It is kept so
	// unrecognized kinds survive a round trip.
	KindName string
	Path     []Point
}

// Source implements [Link]. A connector without a source box returns nil.
func (c *Connector) Source() Shape {
	if c.From == nil {
		return nil
	}
	return c.From
}

// Destination implements [Link]. A connector without a target box returns nil.
func (c *Connector) Destination() Shape {
	if c.To == nil {
		return nil
	}
	return c.To
}

// Kind implements [Link].
func (c *Connector) Kind() LinkKind { return c.LinkKind }

// SetPath implements [Link].
func (c *Connector) SetPath(points []Point) { c.Path = slices.Clone(points) }

// Diagram is an ordered collection of boxes and connectors.
type Diagram struct {
	Boxes      []*Box
	Connectors []*Connector
}

// Box returns the box with the given id.
func (d *Diagram) Box(id string) (*Box, bool) {
	for _, b := range d.Boxes {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Shapes returns the boxes as [Shape] handles, in document order.
func (d *Diagram) Shapes() []Shape {
	out := make([]Shape, len(d.Boxes))
	for i, b := range d.Boxes {
		out[i] = b
	}
	return out
}

// Links returns the connectors as [Link] handles, in document order.
func (d *Diagram) Links() []Link {
	out := make([]Link, len(d.Connectors))
	for i, c := range d.Connectors {
		out[i] = c
	}
	return out
}

// Positions returns a snapshot of every box position keyed by id.
func (d *Diagram) Positions() map[string]Point {
	m := make(map[string]Point, len(d.Boxes))
	for _, b := range d.Boxes {
		m[b.ID] = b.Position()
	}
	return m
}
