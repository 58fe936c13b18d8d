package debugdraw

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// Renderer consumes the merged mesh of a frame.
// The mesh is only valid for the duration of the call and must not be retained.
type Renderer interface {
	Render(mesh *Mesh) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(mesh *Mesh) error

// Render calls f(mesh).
func (f RendererFunc) Render(mesh *Mesh) error { return f(mesh) }

type phase uint8

const (
	phaseCollecting phase = iota
	phaseFlushing
)

// Accumulator collects draw commands for one frame and hands them to a
// Renderer as a single depth-sorted mesh.
//
// An Accumulator is not safe for concurrent use; the frame has one writer.
// The GlyphCache it draws text with may be shared.
type Accumulator struct {
	renderer Renderer
	text     *TextLayout
	logger   *slog.Logger

	// pending and spare are swapped on every flush so the frame being
	// rendered and the next frame never share a backing array.
	pending []Mesh
	spare   []Mesh

	phase phase
	frame uint64

	// set by WithBaseScale and WithLineHeight, applied after all options
	baseScale  float32
	lineHeight float32
}

// New creates an Accumulator that renders through renderer and draws text
// with glyphs. glyphs may be nil if no text is drawn; Text commands are then
// dropped.
func New(renderer Renderer, glyphs *GlyphCache, opts ...Option) *Accumulator {
	a := &Accumulator{
		renderer: renderer,
		text:     NewTextLayout(glyphs),
		logger:   defaultLogger,
		pending:  make([]Mesh, 0, defaultFrameCapacity),
		spare:    make([]Mesh, 0, defaultFrameCapacity),
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.baseScale > 0 {
		a.text.BaseScale = a.baseScale
	}
	if a.lineHeight > 0 {
		a.text.LineHeight = a.lineHeight
	}

	return a
}

// TextLayout returns the layout used for Text commands.
func (a *Accumulator) TextLayout() *TextLayout {
	return a.text
}

// Submit tessellates cmd and queues it for the next Flush.
// Commands that produce no triangles are dropped.
func (a *Accumulator) Submit(cmd DrawCommand) {
	var m Mesh
	switch c := cmd.(type) {
	case Line:
		m = c.Mesh()
	case Rect:
		m = c.Mesh()
	case Circle:
		m = c.Mesh()
	case Triangle:
		m = c.Mesh()
	case Text:
		m = a.text.Mesh(c)
	default:
		panic(fmt.Sprintf("debugdraw: unknown draw command %T", cmd))
	}
	a.push(m)
}

// SubmitMesh queues a pre-built mesh. Meshes that fail Validate are dropped.
func (a *Accumulator) SubmitMesh(m Mesh) {
	if err := m.Validate(); err != nil {
		a.logger.Warn("dropping mesh", "error", err, "vertices", len(m.Vertices), "indices", len(m.Indices))
		return
	}
	a.push(m)
}

func (a *Accumulator) push(m Mesh) {
	if m.Empty() {
		return
	}
	a.pending = append(a.pending, m)
}

// Line draws a solid line.
func (a *Accumulator) Line(from, to Vec2, thickness float32, color Color, depth float32) {
	l := SolidLine(from, to, thickness, color)
	l.Depth = depth
	a.Submit(l)
}

// GradientLine draws a line whose colour blends from fromColor to toColor.
func (a *Accumulator) GradientLine(from, to Vec2, thickness float32, fromColor, toColor Color, depth float32) {
	a.Submit(Line{From: from, To: to, Thickness: thickness, FromColor: fromColor, ToColor: toColor, Depth: depth})
}

// Rect draws a filled rectangle centred on position.
func (a *Accumulator) Rect(position, size Vec2, rotation float32, color Color, depth float32) {
	a.Submit(Rect{Position: position, Size: size, Rotation: rotation, Color: color, Depth: depth})
}

// Circle draws a filled circle with DefaultCircleSegments segments.
func (a *Accumulator) Circle(position Vec2, radius float32, color Color, depth float32) {
	a.Submit(Circle{Position: position, Radius: radius, Color: color, Depth: depth})
}

// Triangle draws a filled triangle.
func (a *Accumulator) Triangle(p0, p1, p2 Vec2, color Color, depth float32) {
	a.Submit(Triangle{Points: [3]Vec2{p0, p1, p2}, Color: color, Depth: depth})
}

// Text draws left and top aligned text at scale 1.
func (a *Accumulator) Text(value string, position Vec2, color Color, depth float32) {
	a.Submit(Text{Value: value, Position: position, Color: color, Depth: depth})
}

// Pending returns the number of meshes queued for the next Flush.
func (a *Accumulator) Pending() int {
	return len(a.pending)
}

// Frame returns the number of completed flushes.
func (a *Accumulator) Frame() uint64 {
	return a.frame
}

// Flush sorts the queued meshes by ascending depth, merges them and calls
// the renderer exactly once, even for an empty frame. Meshes with equal
// depth keep their submission order. The queue is empty afterwards whether
// or not the renderer fails; the renderer's error is returned.
//
// Calling Flush from inside Renderer.Render is ignored.
func (a *Accumulator) Flush() error {
	if a.phase == phaseFlushing {
		a.logger.Warn("flush called while flushing; ignored", "frame", a.frame)
		return nil
	}
	a.phase = phaseFlushing
	defer func() { a.phase = phaseCollecting }()

	frame := a.pending
	a.pending = a.spare[:0]

	// NaN depths sort first and leave the order of the rest intact.
	slices.SortStableFunc(frame, func(x, y Mesh) int {
		return cmp.Compare(x.Depth, y.Depth)
	})

	merged := acquireMesh()
	mergeInto(merged, frame)

	err := a.renderer.Render(merged)

	a.logger.Debug("frame flushed",
		"frame", a.frame,
		"meshes", len(frame),
		"vertices", len(merged.Vertices),
		"triangles", merged.TriangleCount())

	releaseMesh(merged)
	clear(frame)
	a.spare = frame[:0]
	a.frame++

	if err != nil {
		return fmt.Errorf("debugdraw: render frame %d: %w", a.frame-1, err)
	}
	return nil
}

// MultiRenderer returns a Renderer that renders each frame through every
// given renderer in order. All renderers are called; the first error is returned.
func MultiRenderer(renderers ...Renderer) Renderer {
	return multiRenderer(slices.Clone(renderers))
}

type multiRenderer []Renderer

func (mr multiRenderer) Render(mesh *Mesh) error {
	var first error
	for _, r := range mr {
		if err := r.Render(mesh); err != nil && first == nil {
			first = err
		}
	}
	return first
}
