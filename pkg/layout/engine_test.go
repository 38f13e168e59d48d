package layout

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/observability"
)

func box(id string) *diagram.Box { return &diagram.Box{ID: id, Width: 100, Height: 50} }

func link(from, to *diagram.Box, kind diagram.LinkKind) *diagram.Connector {
	return &diagram.Connector{From: from, To: to, LinkKind: kind}
}

func positions(d *diagram.Diagram) map[string]diagram.Point { return d.Positions() }

func samePositions(t *testing.T, got, want map[string]diagram.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for id, p := range want {
		if got[id] != p {
			t.Errorf("%s = %+v, want %+v", id, got[id], p)
		}
	}
}

func TestLayoutChain(t *testing.T) {
	a, b, c := box("A"), box("B"), box("C")
	d := &diagram.Diagram{
		Boxes: []*diagram.Box{a, b, c},
		Connectors: []*diagram.Connector{
			link(a, b, diagram.LinkInheritance),
			link(b, c, diagram.LinkInheritance),
		},
	}

	stats, err := New().Run(context.Background(), d.Shapes(), d.Links(), Config{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.Levels != 3 || stats.VirtualNodes != 0 {
		t.Errorf("stats = %+v, want 3 levels and no virtual nodes", stats)
	}
	if !(a.Y < b.Y && b.Y < c.Y) {
		t.Errorf("y = %v, %v, %v, want A < B < C", a.Y, b.Y, c.Y)
	}
	for _, conn := range d.Connectors {
		if len(conn.Path) != 2 {
			t.Errorf("path = %v, want two points", conn.Path)
		}
	}
}

func TestLayoutVirtualNodeScenario(t *testing.T) {
	dd, e, f, g, h := box("D"), box("E"), box("F"), box("G"), box("H")
	long := link(f, g, diagram.LinkInheritance)
	d := &diagram.Diagram{
		Boxes: []*diagram.Box{dd, e, f, g, h},
		Connectors: []*diagram.Connector{
			link(dd, e, diagram.LinkInheritance),
			link(f, h, diagram.LinkInheritance),
			link(h, g, diagram.LinkInterface),
			long,
		},
	}

	stats, err := New().Run(context.Background(), d.Shapes(), d.Links(), Config{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.VirtualNodes != 1 {
		t.Errorf("VirtualNodes = %d, want 1", stats.VirtualNodes)
	}
	if len(long.Path) != 3 {
		t.Fatalf("F->G path = %v, want one bend point", long.Path)
	}
	if bend := long.Path[1]; !(bend.Y > long.Path[0].Y && bend.Y < long.Path[2].Y) {
		t.Errorf("bend y = %v, want between %v and %v", bend.Y, long.Path[0].Y, long.Path[2].Y)
	}
	if h.Y <= f.Y || g.Y <= h.Y {
		t.Errorf("y = F %v, H %v, G %v, want F < H < G", f.Y, h.Y, g.Y)
	}
}

func TestLayoutCycleLeavesDiagramUntouched(t *testing.T) {
	a, b, c := box("A"), box("B"), box("C")
	a.X, a.Y, b.X, b.Y, c.X, c.Y = 1, 2, 3, 4, 5, 6
	d := &diagram.Diagram{
		Boxes: []*diagram.Box{a, b, c},
		Connectors: []*diagram.Connector{
			link(a, b, diagram.LinkInheritance),
			link(b, a, diagram.LinkInheritance),
			link(c, a, diagram.LinkAssociation),
		},
	}
	before := positions(d)

	err := Layout(context.Background(), d.Shapes(), d.Links(), Config{})
	if !errors.Is(err, errors.ErrCodeCyclicHierarchy) {
		t.Fatalf("Layout() error = %v, want CYCLIC_HIERARCHY", err)
	}
	var cyc *errors.CyclicHierarchyError
	if !errors.As(err, &cyc) || len(cyc.Nodes) != 2 {
		t.Errorf("cycle nodes = %v, want [A B]", cyc)
	}
	samePositions(t, positions(d), before)
	for _, conn := range d.Connectors {
		if conn.Path != nil {
			t.Errorf("link %s got a path on failure", conn.ID)
		}
	}
}

func TestLayoutEmptyInput(t *testing.T) {
	stats, err := New().Run(context.Background(), nil, nil, Config{})
	if err != nil {
		t.Fatalf("Run() on empty input error: %v", err)
	}
	if stats.Shapes != 0 || stats.Levels != 0 {
		t.Errorf("stats = %+v, want zero counts", stats)
	}
}

func TestLayoutInvalidConfig(t *testing.T) {
	a := box("A")
	a.X = 7
	err := Layout(context.Background(), []diagram.Shape{a}, nil, Config{VerticalGap: -1})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Layout() error = %v, want INVALID_CONFIG", err)
	}
	if a.X != 7 {
		t.Error("invalid config mutated a shape")
	}
}

func TestLayoutCancelledContextMutatesNothing(t *testing.T) {
	a, b := box("A"), box("B")
	a.X, b.X = 500, 600
	conn := link(a, b, diagram.LinkInheritance)
	d := &diagram.Diagram{Boxes: []*diagram.Box{a, b}, Connectors: []*diagram.Connector{conn}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Layout(ctx, d.Shapes(), d.Links(), Config{})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Layout() error = %v, want context.Canceled", err)
	}
	if a.X != 500 || b.X != 600 || conn.Path != nil {
		t.Error("cancelled layout mutated the diagram")
	}
}

// classes is a mixed diagram with crossings, a long link and loose shapes.
func classes() *diagram.Diagram {
	shape, poly, circle, square, rect := box("Shape"), box("Polygon"), box("Circle"), box("Square"), box("Rect")
	canvas, note, logger := box("Canvas"), box("Note"), box("Logger")
	return &diagram.Diagram{
		Boxes: []*diagram.Box{square, circle, rect, poly, shape, canvas, note, logger},
		Connectors: []*diagram.Connector{
			link(square, rect, diagram.LinkInheritance),
			link(rect, poly, diagram.LinkInheritance),
			link(poly, shape, diagram.LinkInheritance),
			link(circle, shape, diagram.LinkInterface),
			link(square, shape, diagram.LinkInterface),
			link(canvas, shape, diagram.LinkAggregation),
			link(canvas, logger, diagram.LinkAssociation),
		},
	}
}

func TestLayoutIdempotent(t *testing.T) {
	d := classes()
	ctx := context.Background()

	var runs []map[string]diagram.Point
	for range 3 {
		if err := Layout(ctx, d.Shapes(), d.Links(), Config{}); err != nil {
			t.Fatalf("Layout() error: %v", err)
		}
		runs = append(runs, positions(d))
	}
	samePositions(t, runs[1], runs[0])
	samePositions(t, runs[2], runs[1])
}

func TestLayoutNonHierarchyBelowHierarchy(t *testing.T) {
	d := classes()
	stats, err := New().Run(context.Background(), d.Shapes(), d.Links(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.NonHierarchy != 3 {
		t.Errorf("NonHierarchy = %d, want 3 (Canvas, Note, Logger)", stats.NonHierarchy)
	}

	loose := map[string]bool{"Canvas": true, "Note": true, "Logger": true}
	maxHierarchyY := 0.0
	for _, b := range d.Boxes {
		if !loose[b.ID] {
			maxHierarchyY = max(maxHierarchyY, b.Y)
		}
	}
	for _, b := range d.Boxes {
		if loose[b.ID] && b.Y <= maxHierarchyY {
			t.Errorf("%s y = %v, want > %v", b.ID, b.Y, maxHierarchyY)
		}
	}
}

func TestLayoutRespectsPassCap(t *testing.T) {
	for _, passes := range []int{1, 2, 8} {
		d := classes()
		stats, err := New().Run(context.Background(), d.Shapes(), d.Links(), Config{MaxCrossingReductionPasses: passes})
		if err != nil {
			t.Fatal(err)
		}
		if stats.Passes > passes {
			t.Errorf("Passes = %d, exceeds cap %d", stats.Passes, passes)
		}
	}
}

func TestEngineConcurrentRuns(t *testing.T) {
	eng := New()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := classes()
			_, err := eng.Run(context.Background(), d.Shapes(), d.Links(), Config{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Run() error: %v", err)
		}
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	mu       sync.Mutex
	stages   []string
	started  int
	finished []error
}

func (h *recordingHooks) OnLayoutStart(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = append(h.finished, err)
}

func TestEngineHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetLayoutHooks(hooks)
	defer observability.Reset()

	d := classes()
	if _, err := New().Run(context.Background(), d.Shapes(), d.Links(), Config{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"build", "levels", "virtual", "initial-order", "ordering", "non-hierarchy", "positions", "apply"}
	if len(hooks.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", hooks.stages, want)
	}
	for i := range want {
		if hooks.stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, hooks.stages[i], want[i])
		}
	}
	if hooks.started != 1 || len(hooks.finished) != 1 || hooks.finished[0] != nil {
		t.Errorf("start/complete = %d/%v, want one successful run", hooks.started, hooks.finished)
	}
}
