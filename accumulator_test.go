package debugdraw_test

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-theft-auto/debugdraw"
)

// mockRenderer records what it was asked to render.
type mockRenderer struct {
	renderCalls int
	vertices    []debugdraw.Vertex
	indices     []uint32
	err         error
	onRender    func()
}

func (m *mockRenderer) Render(mesh *debugdraw.Mesh) error {
	m.renderCalls++
	// The mesh is reused after Render returns, so keep copies.
	m.vertices = append([]debugdraw.Vertex(nil), mesh.Vertices...)
	m.indices = append([]uint32(nil), mesh.Indices...)
	if m.onRender != nil {
		m.onRender()
	}
	return m.err
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newAccumulator(r debugdraw.Renderer, opts ...debugdraw.Option) *debugdraw.Accumulator {
	return debugdraw.New(r, nil, append([]debugdraw.Option{debugdraw.WithLogger(quietLogger)}, opts...)...)
}

func TestAccumulatorBasicUsage(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)

	acc.Line(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, 0.1, debugdraw.White, 0)
	acc.Rect(debugdraw.Vec2{}, debugdraw.Vec2{X: 1, Y: 1}, 0, debugdraw.Red, 0)
	acc.Circle(debugdraw.Vec2{}, 1, debugdraw.Green, 0)
	acc.Triangle(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, debugdraw.Vec2{Y: 1}, debugdraw.Blue, 0)

	if acc.Pending() != 4 {
		t.Errorf("expected 4 pending meshes, got %d", acc.Pending())
	}

	if err := acc.Flush(); err != nil {
		t.Fatalf("Flush() returned error: %v", err)
	}

	if renderer.renderCalls != 1 {
		t.Errorf("expected 1 render call, got %d", renderer.renderCalls)
	}
	wantVertices := 4 + 4 + debugdraw.DefaultCircleSegments + 1 + 3
	if len(renderer.vertices) != wantVertices {
		t.Errorf("expected %d vertices, got %d", wantVertices, len(renderer.vertices))
	}
	if acc.Pending() != 0 {
		t.Errorf("frame not cleared, %d pending", acc.Pending())
	}
	if acc.Frame() != 1 {
		t.Errorf("expected frame 1, got %d", acc.Frame())
	}
}

func TestAccumulatorEmptyFrame(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)

	if err := acc.Flush(); err != nil {
		t.Fatalf("Flush() returned error: %v", err)
	}
	if renderer.renderCalls != 1 {
		t.Errorf("expected 1 render call for an empty frame, got %d", renderer.renderCalls)
	}
	if len(renderer.vertices) != 0 || len(renderer.indices) != 0 {
		t.Error("empty frame should render an empty mesh")
	}
}

func TestAccumulatorDropsEmptyCommands(t *testing.T) {
	acc := newAccumulator(&mockRenderer{})

	acc.Line(debugdraw.Vec2{X: 1}, debugdraw.Vec2{X: 1}, 1, debugdraw.White, 0)
	acc.Rect(debugdraw.Vec2{}, debugdraw.Vec2{X: 0, Y: 3}, 0, debugdraw.White, 0)
	acc.Circle(debugdraw.Vec2{}, 0, debugdraw.White, 0)
	acc.Triangle(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, debugdraw.Vec2{X: 2}, debugdraw.White, 0)
	acc.Text("no glyph cache", debugdraw.Vec2{}, debugdraw.White, 0)

	if acc.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", acc.Pending())
	}
}

func TestAccumulatorDepthOrder(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)

	tri := func(c debugdraw.Color, depth float32) {
		acc.Triangle(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, debugdraw.Vec2{Y: 1}, c, depth)
	}

	// Submission order vs depth: equal depths keep submission order.
	tri(debugdraw.Red, 2)
	tri(debugdraw.Green, 0)
	tri(debugdraw.Blue, 1)
	tri(debugdraw.Yellow, 0)
	tri(debugdraw.Cyan, -1)

	if err := acc.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []debugdraw.Color
	for i := 0; i < len(renderer.vertices); i += 3 {
		got = append(got, renderer.vertices[i].Color)
	}
	want := []debugdraw.Color{debugdraw.Cyan, debugdraw.Green, debugdraw.Yellow, debugdraw.Blue, debugdraw.Red}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}

	wantIdx := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	if diff := cmp.Diff(wantIdx, renderer.indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorDepthOrderNaN(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)

	nan := float32(math.NaN())
	for _, tc := range []struct {
		c     debugdraw.Color
		depth float32
	}{
		{debugdraw.Red, 3},
		{debugdraw.Green, nan},
		{debugdraw.Blue, 1},
		{debugdraw.Yellow, 2},
	} {
		acc.Triangle(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, debugdraw.Vec2{Y: 1}, tc.c, tc.depth)
	}

	if err := acc.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []debugdraw.Color
	for i := 0; i < len(renderer.vertices); i += 3 {
		got = append(got, renderer.vertices[i].Color)
	}
	// NaN first, then the finite depths ascending.
	want := []debugdraw.Color{debugdraw.Green, debugdraw.Blue, debugdraw.Yellow, debugdraw.Red}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorTextLayoutOptions(t *testing.T) {
	shared := debugdraw.NewTextLayout(nil)

	acc := newAccumulator(&mockRenderer{}, debugdraw.WithTextLayout(shared), debugdraw.WithBaseScale(0.5))
	if shared.BaseScale != debugdraw.DefaultBaseScale {
		t.Errorf("shared layout modified: BaseScale = %v", shared.BaseScale)
	}
	if got := acc.TextLayout().BaseScale; got != 0.5 {
		t.Errorf("BaseScale = %v, want 0.5", got)
	}

	acc = newAccumulator(&mockRenderer{}, debugdraw.WithBaseScale(0.5), debugdraw.WithLineHeight(900), debugdraw.WithTextLayout(shared))
	if got := acc.TextLayout().BaseScale; got != 0.5 {
		t.Errorf("BaseScale before WithTextLayout lost: got %v, want 0.5", got)
	}
	if got := acc.TextLayout().LineHeight; got != 900 {
		t.Errorf("LineHeight before WithTextLayout lost: got %v, want 900", got)
	}

	shared.LineHeight = 10
	if acc.TextLayout().LineHeight != 900 {
		t.Error("accumulator layout follows later changes to the shared layout")
	}
}

func TestAccumulatorMergedMeshValid(t *testing.T) {
	var merged debugdraw.Mesh
	renderer := debugdraw.RendererFunc(func(m *debugdraw.Mesh) error {
		merged = debugdraw.Merge(*m)
		return nil
	})
	acc := newAccumulator(renderer)

	for i := 0; i < 20; i++ {
		depth := float32(i % 3)
		acc.Circle(debugdraw.Vec2{X: float32(i)}, 1, debugdraw.White, depth)
		acc.Rect(debugdraw.Vec2{Y: float32(i)}, debugdraw.Vec2{X: 1, Y: 2}, float32(i), debugdraw.White, -depth)
	}
	if err := acc.Flush(); err != nil {
		t.Fatal(err)
	}

	if err := merged.Validate(); err != nil {
		t.Errorf("merged mesh invalid: %v", err)
	}
	wantTris := 20 * (debugdraw.DefaultCircleSegments + 2)
	if merged.TriangleCount() != wantTris {
		t.Errorf("expected %d triangles, got %d", wantTris, merged.TriangleCount())
	}
}

func TestAccumulatorSubmitMesh(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)

	acc.SubmitMesh(debugdraw.Mesh{
		Vertices: make([]debugdraw.Vertex, 3),
		Indices:  []uint32{0, 1, 5},
	})
	if acc.Pending() != 0 {
		t.Error("invalid mesh should be dropped")
	}

	acc.SubmitMesh(debugdraw.Mesh{
		Vertices: make([]debugdraw.Vertex, 3),
		Indices:  []uint32{2, 1, 0},
	})
	if acc.Pending() != 1 {
		t.Error("valid mesh should be queued")
	}
}

func TestAccumulatorRendererError(t *testing.T) {
	boom := errors.New("boom")
	renderer := &mockRenderer{err: boom}
	acc := newAccumulator(renderer)

	acc.Circle(debugdraw.Vec2{}, 1, debugdraw.White, 0)
	err := acc.Flush()
	if !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
	if acc.Pending() != 0 {
		t.Error("frame should be cleared even when rendering fails")
	}

	renderer.err = nil
	if err := acc.Flush(); err != nil {
		t.Errorf("second Flush() returned error: %v", err)
	}
	if len(renderer.vertices) != 0 {
		t.Error("failed frame leaked into the next one")
	}
}

func TestAccumulatorReentrantFlush(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer)
	renderer.onRender = func() {
		// Submissions during rendering belong to the next frame.
		acc.Circle(debugdraw.Vec2{}, 1, debugdraw.White, 0)
		if err := acc.Flush(); err != nil {
			t.Errorf("nested Flush() returned error: %v", err)
		}
	}

	acc.Rect(debugdraw.Vec2{}, debugdraw.Vec2{X: 1, Y: 1}, 0, debugdraw.White, 0)
	if err := acc.Flush(); err != nil {
		t.Fatal(err)
	}

	if renderer.renderCalls != 1 {
		t.Errorf("nested Flush should be ignored, got %d render calls", renderer.renderCalls)
	}
	if acc.Pending() != 1 {
		t.Errorf("expected the nested submission to be pending, got %d", acc.Pending())
	}
}

func TestAccumulatorReusesBuffers(t *testing.T) {
	renderer := &mockRenderer{}
	acc := newAccumulator(renderer, debugdraw.WithFrameCapacity(4))

	for frame := 0; frame < 5; frame++ {
		for i := 0; i <= frame; i++ {
			acc.Triangle(debugdraw.Vec2{}, debugdraw.Vec2{X: 1}, debugdraw.Vec2{Y: 1}, debugdraw.White, float32(-i))
		}
		if err := acc.Flush(); err != nil {
			t.Fatal(err)
		}
		if got := len(renderer.indices) / 3; got != frame+1 {
			t.Errorf("frame %d: expected %d triangles, got %d", frame, frame+1, got)
		}
	}
}

func TestMultiRenderer(t *testing.T) {
	a, b := &mockRenderer{}, &mockRenderer{err: errors.New("b failed")}
	acc := newAccumulator(debugdraw.MultiRenderer(a, b))

	acc.Rect(debugdraw.Vec2{}, debugdraw.Vec2{X: 1, Y: 1}, 0, debugdraw.White, 0)
	if err := acc.Flush(); err == nil {
		t.Error("expected error from second renderer")
	}
	if a.renderCalls != 1 || b.renderCalls != 1 {
		t.Errorf("render calls a=%d b=%d, want 1 each", a.renderCalls, b.renderCalls)
	}
	if diff := cmp.Diff(a.indices, b.indices); diff != "" {
		t.Errorf("renderers saw different frames (-a +b):\n%s", diff)
	}
}

func TestAccumulatorText(t *testing.T) {
	font, err := debugdraw.DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	glyphs := debugdraw.NewGlyphCache(font, debugdraw.WithCacheLogger(quietLogger))

	renderer := &mockRenderer{}
	acc := debugdraw.New(renderer, glyphs, debugdraw.WithLogger(quietLogger), debugdraw.WithBaseScale(0.01))

	acc.Text("Hello", debugdraw.Vec2{}, debugdraw.White, 0)
	if err := acc.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(renderer.indices) == 0 {
		t.Fatal("text rendered no triangles")
	}

	w, _ := acc.TextLayout().Measure("Hello", 1)
	var maxX float32
	for _, v := range renderer.vertices {
		maxX = max(maxX, v.Position.X)
	}
	if maxX > w*1.1 {
		t.Errorf("glyphs extend to %v, beyond measured width %v", maxX, w)
	}
}
