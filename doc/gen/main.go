// Command gen renders every primitive with sample data, captures framebuffer pixels,
// and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/debugdraw"
	"github.com/go-theft-auto/debugdraw/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single gallery image to capture.
type screenshot struct {
	name   string                           // filename without extension
	width  int                              // viewport width
	height int                              // viewport height
	zoom   float32                          // pixels per world unit
	draw   func(acc *debugdraw.Accumulator) // drawing function
}

func run() error {
	window, err := opengl.OpenWindow(opengl.WindowConfig{
		Title:  "screenshot-gen",
		Width:  800,
		Height: 600,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	font, err := debugdraw.DefaultFont()
	if err != nil {
		return err
	}
	glyphs := debugdraw.NewGlyphCache(font)

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(window.Renderer, glyphs, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	stats := glyphs.Stats()
	fmt.Printf("\nGenerated %d screenshots in %s/ (%d glyphs, %d blank)\n",
		len(shots), outDir, glyphs.Len(), stats.Failures)
	return nil
}

func capture(renderer *opengl.Renderer, glyphs *debugdraw.GlyphCache, s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot.
	renderer.Resize(s.width, s.height)
	renderer.Center = debugdraw.Vec2{}
	renderer.PixelsPerUnit = s.zoom

	acc := debugdraw.New(renderer, glyphs)

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	s.draw(acc)
	if err := acc.Flush(); err != nil {
		return err
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "lines", width: 400, height: 200, zoom: 40,
			draw: func(acc *debugdraw.Accumulator) {
				acc.Line(debugdraw.Vec2{X: -4, Y: 1.5}, debugdraw.Vec2{X: 4, Y: 1.5}, 0.05, debugdraw.White, 0)
				acc.Line(debugdraw.Vec2{X: -4, Y: 0.5}, debugdraw.Vec2{X: 4, Y: 0.5}, 0.2, debugdraw.Green, 0)
				acc.GradientLine(debugdraw.Vec2{X: -4, Y: -0.75}, debugdraw.Vec2{X: 4, Y: -0.75}, 0.5, debugdraw.Red, debugdraw.Blue, 0)
				acc.Line(debugdraw.Vec2{X: -4, Y: -2}, debugdraw.Vec2{X: 4, Y: -1.5}, 0.1, debugdraw.Yellow, 0)
			},
		},
		{
			name: "rects", width: 400, height: 200, zoom: 40,
			draw: func(acc *debugdraw.Accumulator) {
				for i := 0; i < 5; i++ {
					x := float32(i)*1.8 - 3.6
					acc.Rect(debugdraw.Vec2{X: x}, debugdraw.Vec2{X: 1.2, Y: 1.2}, float32(i)*math.Pi/16,
						debugdraw.HSL(float32(i)*60, 0.7, 0.5), 0)
				}
			},
		},
		{
			name: "circles", width: 400, height: 200, zoom: 40,
			draw: func(acc *debugdraw.Accumulator) {
				for i, segments := range []int{3, 5, 8, 16, 0} {
					acc.Submit(debugdraw.Circle{
						Position: debugdraw.Vec2{X: float32(i)*1.8 - 3.6},
						Radius:   1.5,
						Segments: segments,
						Color:    debugdraw.Cyan,
					})
				}
			},
		},
		{
			name: "depth", width: 300, height: 200, zoom: 40,
			draw: func(acc *debugdraw.Accumulator) {
				// Submitted front to back; depth sorts them back to front.
				acc.Circle(debugdraw.Vec2{X: 1, Y: -0.5}, 2.5, debugdraw.Red, 2)
				acc.Circle(debugdraw.Vec2{Y: 0.5}, 2.5, debugdraw.Green, 1)
				acc.Circle(debugdraw.Vec2{X: -1, Y: -0.5}, 2.5, debugdraw.Blue, 0)
			},
		},
		{
			name: "text", width: 500, height: 240, zoom: 30,
			draw: func(acc *debugdraw.Accumulator) {
				acc.Line(debugdraw.Vec2{X: -8}, debugdraw.Vec2{X: 8}, 0.02, debugdraw.Gray, 0)
				acc.Line(debugdraw.Vec2{Y: -4}, debugdraw.Vec2{Y: 4}, 0.02, debugdraw.Gray, 0)
				for i, align := range []debugdraw.HAlign{debugdraw.AlignLeft, debugdraw.AlignCenter, debugdraw.AlignRight} {
					acc.Submit(debugdraw.Text{
						Value:    "Align\nmultiple lines",
						Position: debugdraw.Vec2{Y: 3 - float32(i)*2.5},
						Color:    debugdraw.HSL(float32(i)*120, 0.6, 0.7),
						Align:    align,
						Depth:    1,
					})
				}
			},
		},
	}
}
