package debugdraw

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// CurveResolution is the number of straight pieces a quadratic curve is split into.
const CurveResolution = 3

// Contour is a closed polygon; the closing edge from the last point back to
// the first is implicit.
type Contour []Vec2

// OutlineBuilder turns a stream of outline drawing commands into contours.
//
// Quadratic curves are flattened by walking both control chords in
// CurveResolution equal steps and interpolating between the walkers. This is a
// cheap approximation of the curve, not an exact Bezier evaluation.
// Cubic curves are not flattened: only their end point is kept.
type OutlineBuilder struct {
	contours []Contour
	current  Contour
}

// MoveTo starts a new contour at p, finishing the current one.
func (b *OutlineBuilder) MoveTo(p Vec2) {
	b.flush()
	b.current = append(b.current, p)
}

// LineTo adds a straight edge to p.
func (b *OutlineBuilder) LineTo(p Vec2) {
	b.current = append(b.current, p)
}

// QuadTo adds a quadratic curve with control point ctrl ending at p.
func (b *OutlineBuilder) QuadTo(ctrl, p Vec2) {
	if len(b.current) == 0 {
		b.current = append(b.current, p)
		return
	}

	const inv = 1.0 / CurveResolution
	p0 := b.current[len(b.current)-1]
	p1 := ctrl
	d01 := p1.Sub(p0).Mul(inv)
	d12 := p.Sub(p1).Mul(inv)
	for i := 0; i < CurveResolution-1; i++ {
		p0 = p0.Add(d01)
		p1 = p1.Add(d12)
		b.current = append(b.current, p0.Add(p1.Sub(p0).Mul(float32(i)*inv)))
	}
	b.current = append(b.current, p)
}

// CubeTo adds a cubic curve ending at p. The control points are ignored and
// the curve degrades to a straight edge.
func (b *OutlineBuilder) CubeTo(_, _, p Vec2) {
	b.current = append(b.current, p)
}

// Close finishes the current contour.
func (b *OutlineBuilder) Close() {
	b.flush()
}

// Contours finishes the current contour and returns everything built so far.
// The builder is reset.
func (b *OutlineBuilder) Contours() []Contour {
	b.flush()
	out := b.contours
	b.contours = nil
	return out
}

func (b *OutlineBuilder) flush() {
	if len(b.current) > 0 {
		b.contours = append(b.contours, b.current)
		b.current = nil
	}
}

// DecomposeSegments converts sfnt outline segments into contours.
// sfnt uses a y-down coordinate system; the result is flipped to y-up so
// that the baseline sits at y=0 with ascenders above it.
func DecomposeSegments(segments sfnt.Segments) []Contour {
	var b OutlineBuilder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(fixedToVec2(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(fixedToVec2(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(fixedToVec2(seg.Args[0]), fixedToVec2(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubeTo(fixedToVec2(seg.Args[0]), fixedToVec2(seg.Args[1]), fixedToVec2(seg.Args[2]))
		}
	}
	return b.Contours()
}

// fixedToVec2 converts a 26.6 fixed point to a y-up Vec2.
func fixedToVec2(p fixed.Point26_6) Vec2 {
	return Vec2{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
}
