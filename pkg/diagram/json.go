package diagram

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/matzehuels/umlayout/pkg/errors"
)

type document struct {
	Shapes []shapeDoc `json:"shapes"`
	Links  []linkDoc  `json:"links"`
}

type shapeDoc struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type linkDoc struct {
	ID          string  `json:"id,omitempty"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Kind        string  `json:"kind"`
	Path        []Point `json:"path,omitempty"`
}

// ReadJSON decodes a diagram document from r.
//
// ReadJSON returns an INVALID_INPUT error if:
//   - The JSON is malformed
//   - A shape id is invalid or duplicated
//   - A shape has a negative width or height
//   - A link references a shape id that is not in the document
//
// Shapes without an id receive a random UUID. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Diagram, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode diagram")
	}

	d := &Diagram{
		Boxes:      make([]*Box, 0, len(doc.Shapes)),
		Connectors: make([]*Connector, 0, len(doc.Links)),
	}
	byID := make(map[string]*Box, len(doc.Shapes))
	for i, s := range doc.Shapes {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		if err := errors.ValidateShapeID(id); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		if _, dup := byID[id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate shape id %q", id)
		}
		if s.Width < 0 || s.Height < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "shape %q has negative size %vx%v", id, s.Width, s.Height)
		}
		b := &Box{ID: id, Label: s.Label, X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
		byID[id] = b
		d.Boxes = append(d.Boxes, b)
	}

	for i, l := range doc.Links {
		src, ok := byID[l.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %d: unknown source %q", i, l.Source)
		}
		dst, ok := byID[l.Destination]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %d: unknown destination %q", i, l.Destination)
		}
		d.Connectors = append(d.Connectors, &Connector{
			ID:       l.ID,
			From:     src,
			To:       dst,
			LinkKind: ParseLinkKind(l.Kind),
			KindName: l.Kind,
			Path:     l.Path,
		})
	}

	return d, nil
}

// WriteJSON encodes d as an indented diagram document.
// The output can be re-read with [ReadJSON] for round-trip processing.
func WriteJSON(d *Diagram, w io.Writer) error {
	out := document{
		Shapes: make([]shapeDoc, len(d.Boxes)),
		Links:  make([]linkDoc, len(d.Connectors)),
	}
	for i, b := range d.Boxes {
		out.Shapes[i] = shapeDoc{ID: b.ID, Label: b.Label, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	}
	for i, c := range d.Connectors {
		kind := c.KindName
		if kind == "" {
			kind = c.LinkKind.String()
		}
		ld := linkDoc{ID: c.ID, Kind: kind, Path: c.Path}
		if c.From != nil {
			ld.Source = c.From.ID
		}
		if c.To != nil {
			ld.Destination = c.To.ID
		}
		out.Links[i] = ld
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
