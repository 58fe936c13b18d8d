// Example draws animated debug shapes and text in a window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Flags:
//
//	-config file.yaml   accumulator settings (base_scale, line_height, frame_capacity, verbose)
//	-dump frames.glb    record the first frames into a binary glTF file
//	-frames n           number of frames recorded by -dump (default 120)
//
// Scroll to zoom, drag with the right mouse button to pan.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/mainthread"

	"github.com/go-theft-auto/debugdraw"
	"github.com/go-theft-auto/debugdraw/backend/gltf"
	"github.com/go-theft-auto/debugdraw/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "debugdraw example"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	dumpPath   = flag.String("dump", "", "record frames into this .glb file")
	dumpFrames = flag.Int("frames", 120, "frames recorded by -dump")
)

func main() {
	flag.Parse()

	var err error
	mainthread.Run(func() { err = run() })
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadOptions() ([]debugdraw.Option, error) {
	if *configPath == "" {
		return nil, nil
	}
	f, err := os.Open(*configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := debugdraw.LoadConfig(f)
	if err != nil {
		return nil, err
	}
	return cfg.Options(), nil
}

func run() error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	font, err := debugdraw.DefaultFont()
	if err != nil {
		return err
	}
	glyphs := debugdraw.NewGlyphCache(font)

	// Triangulate the printable ASCII range off the main thread while GL starts.
	warmed := make(chan struct{})
	go func() {
		defer close(warmed)
		for r := rune(32); r < 127; r++ {
			glyphs.Lookup(r)
		}
	}()

	var window *opengl.Window
	mainthread.Call(func() {
		window, err = opengl.OpenWindow(opengl.WindowConfig{
			Title:   windowTitle,
			Width:   windowWidth,
			Height:  windowHeight,
			Visible: true,
			VSync:   true,
		})
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(window.Close)
	window.Renderer.PixelsPerUnit = 40

	var sink debugdraw.Renderer = window.Renderer
	var recorder *gltf.Recorder
	if *dumpPath != "" {
		recorder = gltf.NewRecorder(gltf.WithFrameLimit(*dumpFrames))
		sink = debugdraw.MultiRenderer(window.Renderer, recorder)
	}

	// Render must run on the thread owning the GL context.
	acc := debugdraw.New(debugdraw.RendererFunc(func(m *debugdraw.Mesh) error {
		var err error
		mainthread.Call(func() { err = sink.Render(m) })
		return err
	}), glyphs, opts...)

	<-warmed

	start := time.Now()
	var closed bool
	for !closed {
		mainthread.Call(func() {
			closed = window.ShouldClose()
			if !closed {
				window.BeginFrame()
			}
		})
		if closed {
			break
		}

		drawScene(acc, float32(time.Since(start).Seconds()), glyphs.Stats())

		if err := acc.Flush(); err != nil {
			return err
		}
		mainthread.Call(window.EndFrame)
	}

	if recorder != nil {
		if err := recorder.Save(*dumpPath); err != nil {
			return err
		}
		fmt.Printf("recorded %d frames to %s\n", recorder.Frames(), *dumpPath)
	}
	return nil
}

func drawScene(acc *debugdraw.Accumulator, t float32, stats debugdraw.GlyphCacheStats) {
	// Axes
	acc.Line(debugdraw.Vec2{X: -8}, debugdraw.Vec2{X: 8}, 0.03, debugdraw.Gray, -1)
	acc.Line(debugdraw.Vec2{Y: -6}, debugdraw.Vec2{Y: 6}, 0.03, debugdraw.Gray, -1)

	// Ring of circles cycling through hues
	const n = 12
	for i := 0; i < n; i++ {
		angle := t*0.5 + float32(i)/n*2*math.Pi
		pos := debugdraw.FromAngle(angle).Mul(4)
		hue := float32(math.Mod(float64(t*60+float32(i)*360/n), 360))
		acc.Circle(pos, 0.8, debugdraw.HSL(hue, 0.8, 0.55), 0)
	}

	// Spinning rectangle behind a triangle
	acc.Rect(debugdraw.Vec2{}, debugdraw.Vec2{X: 3, Y: 1.5}, t, debugdraw.Blue.WithAlpha(0.6), 1)
	acc.Triangle(
		debugdraw.Vec2{X: -1, Y: -1},
		debugdraw.Vec2{X: 1, Y: -1},
		debugdraw.Vec2{X: 0, Y: 1},
		debugdraw.Yellow.WithAlpha(0.8), 2)

	acc.GradientLine(
		debugdraw.Vec2{X: -6, Y: -5},
		debugdraw.Vec2{X: 6, Y: -5},
		0.2, debugdraw.Red, debugdraw.Cyan, 0)

	acc.Submit(debugdraw.Text{
		Value:    "debugdraw\nfilled glyph text",
		Position: debugdraw.Vec2{Y: 5.5},
		Color:    debugdraw.White,
		Align:    debugdraw.AlignCenter,
		Depth:    3,
	})
	acc.Submit(debugdraw.Text{
		Value:    fmt.Sprintf("frame %d  glyphs %d hit / %d miss", acc.Frame(), stats.Hits, stats.Misses),
		Position: debugdraw.Vec2{X: 7.5, Y: -5.5},
		Scale:    0.5,
		Color:    debugdraw.Gray,
		Align:    debugdraw.AlignRight,
		VAlign:   debugdraw.AlignBottom,
		Depth:    3,
	})
}
