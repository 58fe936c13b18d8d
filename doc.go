/*
Package debugdraw is an immediate-mode geometry engine for 2D debug overlays.

# Overview

Every frame the caller describes what to draw: lines, rectangles, circles,
triangles and text. Each description is turned into a small indexed triangle
mesh as soon as it is submitted. Flush orders the frame's meshes by depth,
merges them into one vertex and index buffer and hands that single mesh to a
Renderer. Nothing is retained between frames except the glyph cache.

# Quick Start

	font, _ := debugdraw.DefaultFont()
	glyphs := debugdraw.NewGlyphCache(font)

	window, _ := opengl.OpenWindow(opengl.WindowConfig{Title: "debug", Width: 800, Height: 600, Visible: true})
	acc := debugdraw.New(window.Renderer, glyphs)

	for !window.ShouldClose() {
	    window.BeginFrame()

	    acc.Line(debugdraw.Vec2{}, debugdraw.Vec2{X: 10, Y: 5}, 0.1, debugdraw.Red, 0)
	    acc.Circle(debugdraw.Vec2{X: 3}, 2, debugdraw.Green, 1)
	    acc.Text("hello", debugdraw.Vec2{Y: 4}, debugdraw.White, 2)

	    if err := acc.Flush(); err != nil {
	        log.Fatal(err)
	    }
	    window.EndFrame()
	}

# Coordinates

World space is y up. Depth only decides paint order: meshes with lower depth
are drawn first, and meshes with equal depth keep submission order. The
merged mesh is meant to be drawn without a depth test.

Rect.Size is the full extent of the rectangle. Circle.Radius is treated the
same way: the perimeter lies at Radius*CircleRadiusScale from the centre.

# Text

Text is drawn with filled glyphs, not a texture atlas. Glyph outlines are
read from a TrueType or OpenType font at GlyphUnitsPerEm units per em.
Quadratic curves are flattened into CurveResolution pieces; cubic curves are
reduced to their end point. The outline is triangulated once per glyph and
kept in a GlyphCache shared by all frames and goroutines.

One glyph unit maps to BaseScale*Text.Scale world units, so with the defaults
a line of text is 1200*0.02 = 24 world units tall. Lines are separated by
'\n' and every line is aligned on its own according to Text.Align. Runes
the font has no glyph for are skipped.

# Renderers

A Renderer receives the merged mesh once per Flush, even when the frame is
empty. The mesh is reused after Render returns. Available sinks:

	backend/opengl   draws the mesh into the current OpenGL 4.1 context
	backend/gltf     records frames into a glTF document

MultiRenderer sends each frame to several sinks.

# Configuration

Options can be given in code or loaded from YAML with LoadConfig:

	base_scale: 0.02
	line_height: 1200
	frame_capacity: 512
	verbose: true

Verbose logging goes through log/slog; see SetVerbose.
*/
package debugdraw
