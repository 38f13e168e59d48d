package graph

import (
	"fmt"
	"reflect"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
)

// Build converts caller shapes and links into a Graph.
//
// One real node is created per distinct shape identity, in first-seen order:
// the shapes slice first, then link endpoints in link order. A shape that only
// appears as a link endpoint still gets a node, and a shape listed without
// links becomes a non-hierarchy node.
//
// Inheritance and interface links become [LinkHierarchy] links with the
// link's source as child. Every other kind, including unknown ones, becomes a
// [LinkNonHierarchy] link. A hierarchy-kind link from a shape to itself is
// demoted to non-hierarchy so it cannot take part in leveling. Parallel
// hierarchy links are kept as independent links.
//
// Build only fails on nil handles, including typed nil pointers wrapped in a
// non-nil interface. These are host programming errors and are reported as
// INVALID_INPUT.
func Build(shapes []diagram.Shape, links []diagram.Link) (*Graph, error) {
	g := New()
	for i, s := range shapes {
		if isNil(s) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "shape %d is nil", i)
		}
		g.AddRealNode(s)
	}

	for i, l := range links {
		if isNil(l) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %d is nil", i)
		}
		src, dst := l.Source(), l.Destination()
		if isNil(src) || isNil(dst) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "link %d has a nil endpoint", i)
		}
		from, to := g.AddRealNode(src), g.AddRealNode(dst)

		kind := LinkNonHierarchy
		if l.Kind().IsHierarchy() && from != to {
			kind = LinkHierarchy
		}
		if _, err := g.AddLink(Link{Kind: kind, From: from, To: to, Ref: l}); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return g, nil
}

// isNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, func or chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
