// Package opengl provides an OpenGL 4.1 sink for debugdraw frames.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/debugdraw"
)

// Renderer uploads each merged frame mesh and draws it with one call.
// All methods must be called on the thread that owns the GL context.
type Renderer struct {
	shader   uint32
	vao, vbo uint32
	ebo      uint32
	projLoc  int32
	width    int
	height   int

	// Center is the world position shown in the middle of the viewport.
	Center debugdraw.Vec2
	// PixelsPerUnit is the zoom factor from world units to pixels.
	PixelsPerUnit float32
}

// Vertex shader source
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    Color = aColor;
}
` + "\x00"

// Fragment shader source
const fragmentShaderSource = `
#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
` + "\x00"

// NewRenderer creates a renderer for a viewport of the given size in pixels.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:         width,
		height:        height,
		PixelsPerUnit: 1,
	}

	var err error
	r.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// Vertex layout: Position (2 floats) + Color (4 floats)
	stride := int32(unsafe.Sizeof(debugdraw.Vertex{}))

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, unsafe.Offsetof(debugdraw.Vertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	return r, nil
}

// Resize updates the viewport size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Projection returns the world-to-clip matrix for the current view.
func (r *Renderer) Projection() mgl32.Mat4 {
	scale := r.PixelsPerUnit
	if scale <= 0 {
		scale = 1
	}
	halfW := float32(r.width) / (2 * scale)
	halfH := float32(r.height) / (2 * scale)
	return mgl32.Ortho2D(r.Center.X-halfW, r.Center.X+halfW, r.Center.Y-halfH, r.Center.Y+halfH)
}

// Render draws the frame mesh. Paint order is index order, so no depth test is used.
func (r *Renderer) Render(mesh *debugdraw.Mesh) error {
	if mesh == nil || mesh.Empty() {
		return nil
	}

	// Save GL state
	var lastProgram int32
	var lastBlendSrc, lastBlendDst int32
	var blendEnabled, depthEnabled, cullEnabled bool

	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &lastBlendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &lastBlendDst)
	blendEnabled = gl.IsEnabled(gl.BLEND)
	depthEnabled = gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled = gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.shader)

	proj := r.Projection()
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(unsafe.Sizeof(debugdraw.Vertex{})),
		gl.Ptr(mesh.Vertices), gl.STREAM_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4,
		gl.Ptr(mesh.Indices), gl.STREAM_DRAW)

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, 0)

	// Restore GL state
	gl.UseProgram(uint32(lastProgram))
	gl.BlendFunc(uint32(lastBlendSrc), uint32(lastBlendDst))

	if blendEnabled {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	if depthEnabled {
		gl.Enable(gl.DEPTH_TEST)
	}
	if cullEnabled {
		gl.Enable(gl.CULL_FACE)
	}

	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl: draw failed with error 0x%x", code)
	}
	return nil
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %s", string(log))
	}
	return shader, nil
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	return program, nil
}
