package debugdraw

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphUnitsPerEm is the em size outlines and advances are loaded at.
// Loading every font at the same em keeps BaseScale and LineHeight
// independent of the font's own units per em.
const GlyphUnitsPerEm = 1000

// GlyphID identifies a glyph within a Font.
type GlyphID uint16

// Font is an outline font. It is safe for concurrent use.
type Font struct {
	sfnt *sfnt.Font
	name string

	// buffers holds sfnt.Buffers; a Buffer must not be shared between goroutines.
	buffers sync.Pool
}

// ParseFont parses a TrueType or OpenType font.
func ParseFont(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "debugdraw: parse font")
	}
	fnt := &Font{sfnt: f}
	fnt.buffers.New = func() any { return new(sfnt.Buffer) }
	buf := fnt.buffer()
	if name, err := f.Name(buf, sfnt.NameIDFamily); err == nil {
		fnt.name = name
	}
	fnt.buffers.Put(buf)
	return fnt, nil
}

// DefaultFont returns the embedded Go Regular font.
func DefaultFont() (*Font, error) {
	return ParseFont(goregular.TTF)
}

// Name returns the font family name, if the font declares one.
func (f *Font) Name() string {
	return f.name
}

// GlyphIndex maps a rune to a glyph. It returns false when the font has no glyph for r.
func (f *Font) GlyphIndex(r rune) (GlyphID, bool) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	idx, err := f.sfnt.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		return 0, false
	}
	return GlyphID(idx), true
}

// Advance returns the horizontal advance of a glyph in GlyphUnitsPerEm units.
func (f *Font) Advance(id GlyphID) (float32, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	adv, err := f.sfnt.GlyphAdvance(buf, sfnt.GlyphIndex(id), fixed.I(GlyphUnitsPerEm), font.HintingNone)
	if err != nil {
		return 0, errors.Wrapf(err, "debugdraw: advance of glyph %d", id)
	}
	return float32(adv) / 64, nil
}

// Outline returns the glyph's contours in GlyphUnitsPerEm units, y up.
// A glyph without outline, such as a space, has no contours.
func (f *Font) Outline(id GlyphID) ([]Contour, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	segments, err := f.sfnt.LoadGlyph(buf, sfnt.GlyphIndex(id), fixed.I(GlyphUnitsPerEm), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "debugdraw: outline of glyph %d", id)
	}
	// segments alias buf, so they are consumed before it is returned to the pool
	return DecomposeSegments(segments), nil
}

func (f *Font) buffer() *sfnt.Buffer {
	return f.buffers.Get().(*sfnt.Buffer)
}
