package debugdraw

import "log/slog"

const defaultFrameCapacity = 256

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithLogger sets the logger for accumulator diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accumulator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTextLayout replaces the text layout, and with it the glyph cache used for Text commands.
// The layout is copied; later changes to l do not affect the Accumulator.
// WithBaseScale and WithLineHeight override l's values regardless of option order.
func WithTextLayout(l *TextLayout) Option {
	return func(a *Accumulator) {
		if l != nil {
			cp := *l
			a.text = &cp
		}
	}
}

// WithBaseScale sets the glyph-unit to world-unit factor applied to text at scale 1.
func WithBaseScale(s float32) Option {
	return func(a *Accumulator) {
		if s > 0 {
			a.baseScale = s
		}
	}
}

// WithLineHeight sets the baseline-to-baseline distance in glyph units.
func WithLineHeight(h float32) Option {
	return func(a *Accumulator) {
		if h > 0 {
			a.lineHeight = h
		}
	}
}

// WithFrameCapacity preallocates room for n meshes per frame.
func WithFrameCapacity(n int) Option {
	return func(a *Accumulator) {
		if n > cap(a.pending) {
			a.pending = make([]Mesh, 0, n)
			a.spare = make([]Mesh, 0, n)
		}
	}
}
