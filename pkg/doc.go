// Package pkg provides the core libraries for umlayout, a hierarchical layout
// engine for UML class diagrams.
//
// # Overview
//
// umlayout positions the shapes of a diagram so that every subclass or
// implementor sits below its parent, long hierarchy links bend around the
// levels they cross, and shapes outside any hierarchy are packed in rows
// below. The pkg directory is organized into three areas:
//
//  1. Model - [diagram] (host-facing interfaces and a JSON document) and
//     [errors] (coded errors)
//  2. Layout - [graph], [graph/transform], [ordering], [placement] and the
//     [layout] engine that runs them
//  3. Hosting - [config], [cache], [server], [observability] and [buildinfo]
//
// # Architecture
//
// A layout run flows through these stages:
//
//	Shapes + Links (host objects)
//	         ↓
//	    [graph] Build (arena of nodes and links)
//	         ↓
//	    [graph/transform] (levels, virtual nodes, initial order)
//	         ↓
//	    [ordering] Barycenter (crossing reduction)
//	         ↓
//	    [placement] (coordinates, connector paths, non-hierarchy rows)
//	         ↓
//	    Write-back onto the host objects
//
// Nothing is written to the host objects until every stage has succeeded, so
// a failed run (for example a cyclic hierarchy) leaves the diagram untouched.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/matzehuels/umlayout/pkg/diagram"
//	    "github.com/matzehuels/umlayout/pkg/layout"
//	)
//
//	f, _ := os.Open("animals.json")
//	d, _ := diagram.ReadJSON(f)
//	if err := layout.Layout(context.Background(), d.Shapes(), d.Links(), layout.Config{}); err != nil {
//	    // errors.Is(err, errors.ErrCodeCyclicHierarchy) etc.
//	}
//	_ = diagram.WriteJSON(d, os.Stdout)
//
// A zero [layout.Config] takes the defaults. Use [layout.New] with
// [layout.WithLogger] for debug logging of each stage and [layout.Engine.Run]
// for run statistics.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/diagram
// [errors]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/errors
// [graph]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/graph
// [graph/transform]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/graph/transform
// [ordering]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/ordering
// [placement]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/placement
// [layout]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/layout
// [config]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/buildinfo
// [layout.Config]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/layout#Config
// [layout.New]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/layout#New
// [layout.WithLogger]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/layout#WithLogger
// [layout.Engine.Run]: https://pkg.go.dev/github.com/matzehuels/umlayout/pkg/layout#Engine.Run
package pkg
