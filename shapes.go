package debugdraw

import "math"

const (
	// DefaultCircleSegments is used when Circle.Segments is zero.
	DefaultCircleSegments = 64

	// CircleRadiusScale maps Circle.Radius to the distance of the perimeter
	// vertices from the centre. Radius therefore spans the whole circle, the
	// same way Rect.Size spans the whole rectangle.
	CircleRadiusScale = 0.5
)

// quadIndices covers four vertices laid out as two opposite pairs.
func quadIndices() []uint32 {
	return []uint32{0, 1, 2, 3, 2, 1}
}

// DrawCommand is a one-frame request to render a shape.
// The set of commands is closed: Line, Rect, Circle, Triangle and Text.
type DrawCommand interface {
	drawCommand()
}

func (Line) drawCommand()     {}
func (Rect) drawCommand()     {}
func (Circle) drawCommand()   {}
func (Triangle) drawCommand() {}
func (Text) drawCommand()     {}

// Line is a thick segment. FromColor and ToColor form a gradient along the
// segment; use SolidLine for a single color.
type Line struct {
	From, To  Vec2
	Thickness float32
	Depth     float32
	FromColor Color
	ToColor   Color
}

// SolidLine returns a single-colored line.
func SolidLine(from, to Vec2, thickness float32, color Color) Line {
	return Line{From: from, To: to, Thickness: thickness, FromColor: color, ToColor: color}
}

// Mesh tessellates the line into the rectangle swept by the segment.
// A zero-length line yields an empty mesh.
func (l Line) Mesh() Mesh {
	if l.From == l.To {
		return Mesh{Depth: l.Depth}
	}

	// Half-thickness offset perpendicular to the segment
	orthogonal := l.From.Sub(l.To).Normalize().Perp().Mul(l.Thickness * 0.5)

	return Mesh{
		Vertices: []Vertex{
			{Position: l.From.Sub(orthogonal), Color: l.FromColor},
			{Position: l.From.Add(orthogonal), Color: l.FromColor},
			{Position: l.To.Sub(orthogonal), Color: l.ToColor},
			{Position: l.To.Add(orthogonal), Color: l.ToColor},
		},
		Indices: quadIndices(),
		Depth:   l.Depth,
	}
}

// Rect is a filled rectangle centred on Position and rotated around it.
type Rect struct {
	Position Vec2
	Size     Vec2
	Rotation float32 // Radians, counter-clockwise
	Depth    float32
	Color    Color
}

// Mesh tessellates the rectangle. A zero width or height yields an empty mesh.
func (r Rect) Mesh() Mesh {
	if r.Size.X == 0 || r.Size.Y == 0 {
		return Mesh{Depth: r.Depth}
	}

	corner := func(sx, sy float32) Vertex {
		offset := r.Size.MulVec(Vec2{X: sx, Y: sy}).Rotate(r.Rotation)
		return Vertex{Position: r.Position.Add(offset), Color: r.Color}
	}

	return Mesh{
		Vertices: []Vertex{
			corner(0.5, 0.5),
			corner(-0.5, 0.5),
			corner(0.5, -0.5),
			corner(-0.5, -0.5),
		},
		Indices: quadIndices(),
		Depth:   r.Depth,
	}
}

// Circle is a filled regular polygon approximating a circle.
// Perimeter vertices sit at Radius*CircleRadiusScale from Position.
type Circle struct {
	Position Vec2
	Radius   float32
	Segments int // 0 selects DefaultCircleSegments
	Rotation float32
	Depth    float32
	Color    Color
}

// Mesh tessellates the circle as a triangle fan around a centre vertex,
// which is stored last (index Segments).
func (c Circle) Mesh() Mesh {
	n := c.Segments
	if n == 0 {
		n = DefaultCircleSegments
	}
	if n < 0 || c.Radius <= 0 {
		return Mesh{Depth: c.Depth}
	}

	m := Mesh{
		Vertices: make([]Vertex, 0, n+1),
		Indices:  make([]uint32, 0, 3*n),
		Depth:    c.Depth,
	}
	center := uint32(n)
	for i := 0; i < n; i++ {
		angle := c.Rotation + float32(i)/float32(n)*2*math.Pi
		m.Vertices = append(m.Vertices, Vertex{
			Position: c.Position.Add(FromAngle(angle).Mul(c.Radius * CircleRadiusScale)),
			Color:    c.Color,
		})
		m.Indices = append(m.Indices, center, uint32(i), uint32((i+1)%n))
	}
	m.Vertices = append(m.Vertices, Vertex{Position: c.Position, Color: c.Color})
	return m
}

// Triangle is a filled triangle. Points may be given in either winding.
type Triangle struct {
	Points [3]Vec2
	Color  Color
	Depth  float32
}

// SignedArea returns twice the signed area of the triangle as given.
// It is positive for counter-clockwise points.
func (t Triangle) SignedArea() float32 {
	a, b, c := t.Points[0], t.Points[1], t.Points[2]
	return (a.X*b.Y + b.X*c.Y + c.X*a.Y) - (b.X*a.Y + c.X*b.Y + a.X*c.Y)
}

// Mesh tessellates the triangle, always emitting counter-clockwise indices.
// A zero-area triangle yields an empty mesh.
func (t Triangle) Mesh() Mesh {
	area := t.SignedArea()
	if area == 0 {
		return Mesh{Depth: t.Depth}
	}

	indices := []uint32{0, 1, 2}
	if area < 0 {
		indices = []uint32{0, 2, 1}
	}

	return Mesh{
		Vertices: []Vertex{
			{Position: t.Points[0], Color: t.Color},
			{Position: t.Points[1], Color: t.Color},
			{Position: t.Points[2], Color: t.Color},
		},
		Indices: indices,
		Depth:   t.Depth,
	}
}
