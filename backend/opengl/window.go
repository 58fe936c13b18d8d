package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/debugdraw"
)

// Window is a GLFW window with a current OpenGL 4.1 core context and a
// Renderer sized to its framebuffer.
type Window struct {
	*glfw.Window
	Renderer *Renderer

	// Background is the clear colour used by BeginFrame.
	Background debugdraw.Color

	dragging   bool
	lastCursor debugdraw.Vec2
}

// WindowConfig describes the window to open.
type WindowConfig struct {
	Title   string
	Width   int
	Height  int
	Visible bool
	VSync   bool
}

// OpenWindow initialises GLFW and OpenGL and creates a window.
// It must be called from the main thread; Close terminates GLFW.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if !cfg.Visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	fbw, fbh := win.GetFramebufferSize()
	renderer, err := NewRenderer(fbw, fbh)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	w := &Window{
		Window:     win,
		Renderer:   renderer,
		Background: debugdraw.RGB(0.12, 0.12, 0.14),
	}

	win.SetScrollCallback(w.scrollCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)

	return w, nil
}

// BeginFrame polls events, resizes the viewport and clears it.
func (w *Window) BeginFrame() {
	glfw.PollEvents()

	fbw, fbh := w.GetFramebufferSize()
	w.Renderer.Resize(fbw, fbh)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(w.Background.R, w.Background.G, w.Background.B, w.Background.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndFrame presents the frame.
func (w *Window) EndFrame() {
	w.SwapBuffers()
}

// Close releases the renderer, destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.Renderer.Delete()
	w.Destroy()
	glfw.Terminate()
}

// scrollCallback zooms the view around its centre.
func (w *Window) scrollCallback(_ *glfw.Window, _, yoff float64) {
	const step = 1.1
	switch {
	case yoff > 0:
		w.Renderer.PixelsPerUnit *= step
	case yoff < 0:
		w.Renderer.PixelsPerUnit /= step
	}
}

// mouseButtonCallback starts and stops panning with the right mouse button.
func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonRight {
		return
	}
	switch action {
	case glfw.Press:
		w.dragging = true
		x, y := w.GetCursorPos()
		w.lastCursor = debugdraw.Vec2{X: float32(x), Y: float32(y)}
	case glfw.Release:
		w.dragging = false
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if !w.dragging {
		return
	}
	cursor := debugdraw.Vec2{X: float32(xpos), Y: float32(ypos)}
	delta := cursor.Sub(w.lastCursor).Mul(1 / w.Renderer.PixelsPerUnit)
	w.lastCursor = cursor

	// Screen y grows downwards, world y upwards.
	w.Renderer.Center = w.Renderer.Center.Add(debugdraw.Vec2{X: -delta.X, Y: delta.Y})
}
