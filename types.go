package debugdraw

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// FromAngle returns the unit vector pointing at angle (radians, counter-clockwise from +X).
func FromAngle(angle float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{X: float32(c), Y: float32(s)}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product.
func (v Vec2) MulVec(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

// Len returns the length of the vector.
func (v Vec2) Len() float32 {
	return v.mgl().Len()
}

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	if v.X == 0 && v.Y == 0 {
		return v
	}
	return fromMgl(v.mgl().Normalize())
}

// Perp returns v rotated by 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	if angle == 0 {
		return v
	}
	return fromMgl(mgl32.Rotate2D(angle).Mul2x1(v.mgl()))
}

func (v Vec2) mgl() mgl32.Vec2 { return mgl32.Vec2{v.X, v.Y} }

func fromMgl(v mgl32.Vec2) Vec2 { return Vec2{X: v[0], Y: v[1]} }

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Named colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Cyan        = Color{0, 1, 1, 1}
	Magenta     = Color{1, 0, 1, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	Transparent = Color{}
)

// RGB creates an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color, clamping every component to [0, 1].
func RGBA(r, g, b, a float32) Color {
	return Color{
		R: clampf(r, 0, 1),
		G: clampf(g, 0, 1),
		B: clampf(b, 0, 1),
		A: clampf(a, 0, 1),
	}
}

// HSL creates an opaque color from hue (degrees), saturation and lightness in [0, 1].
func HSL(h, s, l float32) Color {
	c := colorful.Hsl(float64(h), float64(s), float64(l)).Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = clampf(a, 0, 1)
	return c
}

// Packed returns the color as 0xAABBGGRR, the byte order OpenGL reads for GL_UNSIGNED_BYTE RGBA.
func (c Color) Packed() uint32 {
	r := uint32(clampf(c.R, 0, 1)*255 + 0.5)
	g := uint32(clampf(c.G, 0, 1)*255 + 0.5)
	b := uint32(clampf(c.B, 0, 1)*255 + 0.5)
	a := uint32(clampf(c.A, 0, 1)*255 + 0.5)
	return a<<24 | b<<16 | g<<8 | r
}

// Vertex is a single mesh vertex.
// Memory layout matches the vertex attributes of the OpenGL backend.
type Vertex struct {
	Position Vec2
	Color    Color
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
