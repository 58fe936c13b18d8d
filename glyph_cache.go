package debugdraw

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Glyph is the triangulated outline of one character plus its advance.
// Coordinates are in GlyphUnitsPerEm units, y up, with the origin on the
// baseline at the pen position. A Glyph is shared between callers and must
// not be modified.
type Glyph struct {
	Triangles [][3]Vec2
	Advance   float32
}

// GlyphCacheStats holds counters for a GlyphCache.
type GlyphCacheStats struct {
	Hits     uint64
	Misses   uint64
	Failures uint64 // Outlines that could not be loaded or triangulated
}

// GlyphCache owns a font and the triangulated glyphs built from it.
// Entries are never evicted; a glyph is built once on first use and shared
// by every frame afterwards.
//
// GlyphCache is safe for concurrent use. Lookups of cached glyphs only take
// a shared lock. Concurrent misses for the same glyph are collapsed into one
// build; should two builds still race, the first insert wins and every caller
// gets that entry.
type GlyphCache struct {
	font   *Font
	logger *slog.Logger

	mu     sync.RWMutex
	glyphs map[GlyphID]Glyph
	group  singleflight.Group

	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

// GlyphCacheOption configures a GlyphCache.
type GlyphCacheOption func(*GlyphCache)

// WithCacheLogger sets the logger used for cache diagnostics.
func WithCacheLogger(l *slog.Logger) GlyphCacheOption {
	return func(c *GlyphCache) { c.logger = l }
}

// NewGlyphCache creates an empty cache for font.
func NewGlyphCache(font *Font, opts ...GlyphCacheOption) *GlyphCache {
	c := &GlyphCache{
		font:   font,
		logger: defaultLogger,
		glyphs: make(map[GlyphID]Glyph),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Font returns the font glyphs are built from.
func (c *GlyphCache) Font() *Font {
	return c.font
}

// Lookup returns the glyph for r. It returns false when the font cannot
// display r; callers skip such runes.
func (c *GlyphCache) Lookup(r rune) (Glyph, bool) {
	id, ok := c.font.GlyphIndex(r)
	if !ok {
		return Glyph{}, false
	}
	return c.Glyph(id), true
}

// Glyph returns the glyph for id, building and caching it on first use.
// A glyph whose outline cannot be triangulated is cached with no triangles
// and keeps its advance.
func (c *GlyphCache) Glyph(id GlyphID) Glyph {
	c.mu.RLock()
	g, ok := c.glyphs[id]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return g
	}

	v, _, _ := c.group.Do(strconv.Itoa(int(id)), func() (any, error) {
		c.misses.Add(1)
		return c.insert(id, c.build(id)), nil
	})
	return v.(Glyph)
}

// Warm builds the glyphs of every rune in s.
func (c *GlyphCache) Warm(s string) {
	for _, r := range s {
		c.Lookup(r)
	}
}

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.glyphs)
}

// Stats returns a snapshot of the cache counters.
func (c *GlyphCache) Stats() GlyphCacheStats {
	return GlyphCacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
	}
}

// insert stores g unless another build got there first, and returns the stored glyph.
func (c *GlyphCache) insert(id GlyphID, g Glyph) Glyph {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.glyphs[id]; ok {
		return existing
	}
	c.glyphs[id] = g
	return g
}

func (c *GlyphCache) build(id GlyphID) Glyph {
	advance, err := c.font.Advance(id)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug("glyph advance unavailable", "glyph", id, "error", err)
	}

	contours, err := c.font.Outline(id)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug("glyph outline unavailable", "glyph", id, "error", err)
		return Glyph{Advance: advance}
	}

	triangles, err := Triangulate(contours)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug("glyph rendered blank", "glyph", id, "contours", len(contours), "error", err)
		return Glyph{Advance: advance}
	}

	c.logger.Debug("glyph cached", "glyph", id, "triangles", len(triangles), "advance", advance)
	return Glyph{Triangles: triangles, Advance: advance}
}
