package layout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/graph"
	"github.com/matzehuels/umlayout/pkg/graph/transform"
	"github.com/matzehuels/umlayout/pkg/observability"
	"github.com/matzehuels/umlayout/pkg/ordering"
	"github.com/matzehuels/umlayout/pkg/placement"
)

// Engine runs the layout pipeline.
//
// The Engine is stateless except for its logger and orderer; it does not keep
// any graph between runs. Multiple goroutines can safely call Run on
// disjoint diagrams.
type Engine struct {
	logger  *log.Logger
	orderer ordering.Orderer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger stages report to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOrderer replaces the barycenter crossing reducer. The orderer's own
// pass limit then applies instead of Config.MaxCrossingReductionPasses.
func WithOrderer(o ordering.Orderer) Option {
	return func(e *Engine) { e.orderer = o }
}

// New creates an Engine. Without options it logs nowhere and orders with
// [ordering.Barycenter].
func New(opts ...Option) *Engine {
	e := &Engine{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats describes a completed layout run.
type Stats struct {
	Shapes       int // distinct real nodes
	Links        int // caller links
	Levels       int
	VirtualNodes int
	NonHierarchy int // real nodes placed outside the hierarchy
	Passes       int // crossing reduction passes run
	Crossings    int // crossings left after ordering
	Width        float64
	Height       float64
	Duration     time.Duration
}

// Layout lays out shapes and links with a default Engine.
func Layout(ctx context.Context, shapes []diagram.Shape, links []diagram.Link, cfg Config) error {
	_, err := New().Run(ctx, shapes, links, cfg)
	return err
}

// Run lays out shapes and links and writes positions and paths back onto
// them. Empty input is a successful no-op.
//
// On any error, including [errors.CyclicHierarchyError] and a context
// cancelled before write-back, no shape or link is modified.
func (e *Engine) Run(ctx context.Context, shapes []diagram.Shape, links []diagram.Link, cfg Config) (stats Stats, err error) {
	start := time.Now()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(shapes), len(links))
	defer func() {
		stats.Duration = time.Since(start)
		hooks.OnLayoutComplete(ctx, stats.Duration, err)
	}()

	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	cfg.SetDefaults()

	if len(shapes) == 0 && len(links) == 0 {
		e.logger.Debug("empty diagram, nothing to lay out")
		return stats, nil
	}

	stageStart := time.Now()
	stage := func(name string, keyvals ...any) {
		d := time.Since(stageStart)
		hooks.OnStageComplete(ctx, name, d)
		e.logger.Debug(name, append(keyvals, "duration", d)...)
		stageStart = time.Now()
	}

	g, err := graph.Build(shapes, links)
	if err != nil {
		return stats, fmt.Errorf("build graph: %w", err)
	}
	stats.Shapes = g.NodeCount()
	stats.Links = g.LinkCount()
	stage("build", "nodes", stats.Shapes, "links", stats.Links)

	stats.VirtualNodes, err = transform.Prepare(g, func(name string) {
		switch name {
		case transform.StageLevels:
			stats.Levels = g.LevelCount()
			stage(name, "levels", stats.Levels)
		case transform.StageVirtual:
			stage(name, "virtual", g.VirtualCount())
		default:
			stage(name)
		}
	})
	if err != nil {
		e.logger.Debug("graph preparation failed", "err", err)
		return stats, err
	}

	orderer := e.orderer
	if orderer == nil {
		orderer = ordering.Barycenter{Passes: cfg.MaxCrossingReductionPasses}
	}
	res, err := orderer.Reduce(g)
	if err != nil {
		return stats, fmt.Errorf("reduce crossings: %w", err)
	}
	stats.Passes, stats.Crossings = res.Passes, res.Crossings
	stage("ordering", "passes", res.Passes, "crossings", res.Crossings)

	spacing := cfg.Spacing()
	extra := placement.PlaceNonHierarchy(g, spacing)
	stats.NonHierarchy = len(extra)
	stage("non-hierarchy", "nodes", stats.NonHierarchy)

	p := placement.FixPositions(g, spacing, extra)
	stats.Width, stats.Height = p.Width, p.Height
	stage("positions", "width", p.Width, "height", p.Height)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("layout cancelled before write-back: %w", err)
	}
	p.Apply(g)
	stage("apply")
	return stats, nil
}
