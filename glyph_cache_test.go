package debugdraw

import (
	"io"
	"log/slog"
	"testing"

	"golang.org/x/sync/errgroup"
)

func newTestCache(t *testing.T) *GlyphCache {
	t.Helper()
	font, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont() error: %v", err)
	}
	return NewGlyphCache(font, WithCacheLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestParseFont(t *testing.T) {
	font, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}
	if font.Name() != "Go" {
		t.Errorf("expected family name Go, got %q", font.Name())
	}

	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontOutline(t *testing.T) {
	font, err := DefaultFont()
	if err != nil {
		t.Fatal(err)
	}

	space, ok := font.GlyphIndex(' ')
	if !ok {
		t.Fatal("no glyph for space")
	}
	contours, err := font.Outline(space)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 0 {
		t.Errorf("space should have no contours, got %d", len(contours))
	}

	a, _ := font.GlyphIndex('A')
	contours, err = font.Outline(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) == 0 {
		t.Fatal("'A' has no contours")
	}
	// y-up: the apex of 'A' is above the baseline
	var maxY float32
	for _, c := range contours {
		for _, p := range c {
			maxY = max(maxY, p.Y)
		}
	}
	if maxY < GlyphUnitsPerEm/2 {
		t.Errorf("expected 'A' to reach above half an em, max y %v", maxY)
	}

	if _, ok := font.GlyphIndex('\uE000'); ok {
		t.Error("private use rune should not map to a glyph")
	}
}

func TestGlyphCacheLookup(t *testing.T) {
	cache := newTestCache(t)

	g, ok := cache.Lookup('A')
	if !ok {
		t.Fatal("Lookup('A') returned false")
	}
	if len(g.Triangles) == 0 {
		t.Error("'A' has no triangles")
	}
	if g.Advance <= 0 {
		t.Errorf("'A' advance = %v", g.Advance)
	}

	again, _ := cache.Lookup('A')
	if &again.Triangles[0] != &g.Triangles[0] {
		t.Error("second lookup returned a different glyph")
	}

	stats := cache.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("stats = %+v, want 1 miss and 1 hit", stats)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestGlyphCacheSpace(t *testing.T) {
	cache := newTestCache(t)

	g, ok := cache.Lookup(' ')
	if !ok {
		t.Fatal("Lookup(' ') returned false")
	}
	if len(g.Triangles) != 0 {
		t.Errorf("space has %d triangles", len(g.Triangles))
	}
	if g.Advance <= 0 {
		t.Errorf("space advance = %v", g.Advance)
	}
	if cache.Stats().Failures != 0 {
		t.Error("space should not count as a failure")
	}
}

func TestGlyphCacheUnmapped(t *testing.T) {
	cache := newTestCache(t)

	if _, ok := cache.Lookup('\uE000'); ok {
		t.Error("Lookup of unmapped rune returned true")
	}
	if cache.Len() != 0 {
		t.Errorf("unmapped rune was cached")
	}
}

func TestGlyphCacheBadGlyph(t *testing.T) {
	cache := newTestCache(t)

	g := cache.Glyph(GlyphID(65000))
	if len(g.Triangles) != 0 {
		t.Error("missing glyph should have no triangles")
	}
	if cache.Stats().Failures == 0 {
		t.Error("expected failures to be counted")
	}
	if cache.Len() != 1 {
		t.Error("failed glyph should still be cached")
	}
}

func TestGlyphCacheWarm(t *testing.T) {
	cache := newTestCache(t)
	cache.Warm("hello")

	// h, e, l, o
	if cache.Len() != 4 {
		t.Errorf("Len() = %d, want 4", cache.Len())
	}
}

func TestGlyphCacheConcurrent(t *testing.T) {
	cache := newTestCache(t)
	const text = "The quick brown fox 0123456789"

	const workers = 16
	results := make([][]Glyph, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for _, r := range text {
				glyph, _ := cache.Lookup(r)
				results[w] = append(results[w], glyph)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	distinct := make(map[rune]struct{})
	for _, r := range text {
		distinct[r] = struct{}{}
	}
	if cache.Len() != len(distinct) {
		t.Errorf("Len() = %d, want %d", cache.Len(), len(distinct))
	}

	// Every worker must observe the same entry for every rune.
	for w := 1; w < workers; w++ {
		for i := range results[0] {
			a, b := results[0][i], results[w][i]
			if a.Advance != b.Advance || len(a.Triangles) != len(b.Triangles) {
				t.Fatalf("worker %d glyph %d differs", w, i)
			}
			if len(a.Triangles) > 0 && &a.Triangles[0] != &b.Triangles[0] {
				t.Fatalf("worker %d glyph %d is a different entry", w, i)
			}
		}
	}
}
