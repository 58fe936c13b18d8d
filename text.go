package debugdraw

import (
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultBaseScale converts glyph units to world units at Text.Scale 1.
	DefaultBaseScale = 0.02

	// DefaultLineHeight is the distance between baselines in glyph units.
	DefaultLineHeight = 1200
)

// HAlign is the horizontal alignment of each text line relative to Text.Position.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical alignment of a text block relative to Text.Position.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Text is a block of filled glyphs. Lines are separated by '\n' and grow
// downwards from the first baseline.
type Text struct {
	Value    string
	Position Vec2
	Scale    float32 // 0 means 1
	Color    Color
	Align    HAlign
	VAlign   VAlign
	Depth    float32
}

// TextLayout builds text meshes from cached glyphs.
type TextLayout struct {
	Glyphs     *GlyphCache
	BaseScale  float32
	LineHeight float32
}

// NewTextLayout creates a layout with the default scale and line height.
func NewTextLayout(glyphs *GlyphCache) *TextLayout {
	return &TextLayout{
		Glyphs:     glyphs,
		BaseScale:  DefaultBaseScale,
		LineHeight: DefaultLineHeight,
	}
}

// character is either a glyph or a line break.
type character struct {
	glyph   Glyph
	newline bool
}

// characters maps text to glyphs. Runes the font cannot display are dropped.
func (l *TextLayout) characters(text string) []character {
	if l.Glyphs == nil {
		return nil
	}
	text = norm.NFC.String(text)
	chars := make([]character, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			chars = append(chars, character{newline: true})
			continue
		}
		if g, ok := l.Glyphs.Lookup(r); ok {
			chars = append(chars, character{glyph: g})
		}
	}
	return chars
}

// lineWidths returns the width of every line and the number of line breaks.
func lineWidths(chars []character, scale float32) ([]float32, int) {
	widths := make([]float32, 1, 4)
	for _, c := range chars {
		if c.newline {
			widths = append(widths, 0)
			continue
		}
		widths[len(widths)-1] += c.glyph.Advance * scale
	}
	return widths, len(widths) - 1
}

func (l *TextLayout) effectiveScale(t Text) float32 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return scale * l.BaseScale
}

func hOffset(width float32, align HAlign) float32 {
	switch align {
	case AlignCenter:
		return -width * 0.5
	case AlignRight:
		return -width
	default:
		return 0
	}
}

func vOffset(height float32, align VAlign) float32 {
	switch align {
	case AlignMiddle:
		return height * 0.5
	case AlignBottom:
		return height
	default:
		return 0
	}
}

// Mesh lays out t and returns one mesh holding every glyph triangle.
func (l *TextLayout) Mesh(t Text) Mesh {
	chars := l.characters(t.Value)
	scale := l.effectiveScale(t)
	widths, breaks := lineWidths(chars, scale)
	lineStep := l.LineHeight * scale

	var triangles int
	for _, c := range chars {
		triangles += len(c.glyph.Triangles)
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, triangles*3),
		Indices:  make([]uint32, 0, triangles*3),
		Depth:    t.Depth,
	}

	line := 0
	cursor := t.Position.Add(Vec2{
		X: hOffset(widths[line], t.Align),
		Y: vOffset(float32(breaks)*lineStep, t.VAlign),
	})
	for _, c := range chars {
		if c.newline {
			line++
			cursor.X = t.Position.X + hOffset(widths[line], t.Align)
			cursor.Y -= lineStep
			continue
		}
		for _, tri := range c.glyph.Triangles {
			for _, p := range tri {
				m.Indices = append(m.Indices, uint32(len(m.Vertices)))
				m.Vertices = append(m.Vertices, Vertex{Position: cursor.Add(p.Mul(scale)), Color: t.Color})
			}
		}
		cursor.X += c.glyph.Advance * scale
	}
	return m
}

// Measure returns the width of the widest line and the height of the block
// of text, in world units, as Mesh would lay it out.
func (l *TextLayout) Measure(text string, scale float32) (width, height float32) {
	t := Text{Value: text, Scale: scale}
	s := l.effectiveScale(t)
	widths, breaks := lineWidths(l.characters(text), s)
	for _, w := range widths {
		width = max(width, w)
	}
	return width, float32(breaks+1) * l.LineHeight * s
}
