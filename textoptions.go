package ledgrid

import "github.com/ledgrid/ledgrid/text"

// TextLayout selects how DrawText arranges glyphs. The set of layouts is
// closed: Horizontal, Vertical, and Wrapped.
type TextLayout struct {
	mode      text.Mode
	lineWidth int
}

// Horizontal lays text out left-to-right on a single line, no wrapping.
// This is the default layout.
func Horizontal() TextLayout {
	return TextLayout{mode: text.ModeHorizontal}
}

// Vertical lays text out top-to-bottom in a single column.
func Vertical() TextLayout {
	return TextLayout{mode: text.ModeVertical}
}

// Wrapped lays text out over multiple lines, breaking at word boundaries so
// that no line exceeds lineWidth pixels. Break points are chosen to minimize
// raggedness (total squared slack over non-final lines), not by greedy fill.
// lineWidth must be positive and at least as wide as the widest glyph.
func Wrapped(lineWidth int) TextLayout {
	return TextLayout{mode: text.ModeWrapped, lineWidth: lineWidth}
}

// TextOptions configures a DrawText call: position, color, layout, and
// spacing. It is an immutable value; each chained setter returns a new
// value, so a base configuration can be reused safely:
//
//	opts := ledgrid.DefaultTextOptions().Color(ledgrid.Green)
//	canvas.DrawText(fnt, "up", opts.Position(0, 10))
//	canvas.DrawText(fnt, "down", opts.Position(0, 24))
type TextOptions struct {
	x, y          int
	color         Color
	layout        TextLayout
	kerningOffset int
	leading       int
}

// DefaultTextOptions returns the default text options: position (0,0),
// white, horizontal layout, no extra kerning, no extra leading.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		color:  White,
		layout: Horizontal(),
	}
}

// Position returns a copy of o drawing at (x, y). y is the baseline of the
// first text line.
func (o TextOptions) Position(x, y int) TextOptions {
	o.x = x
	o.y = y
	return o
}

// Color returns a copy of o drawing in the given color.
func (o TextOptions) Color(c Color) TextOptions {
	o.color = c
	return o
}

// Layout returns a copy of o using the given layout.
func (o TextOptions) Layout(l TextLayout) TextOptions {
	o.layout = l
	return o
}

// KerningOffset returns a copy of o with extra horizontal spacing, in
// pixels, inserted between consecutive glyphs. May be negative to tighten.
func (o TextOptions) KerningOffset(px int) TextOptions {
	o.kerningOffset = px
	return o
}

// Leading returns a copy of o with extra vertical spacing, in pixels,
// inserted between wrapped lines.
func (o TextOptions) Leading(px int) TextOptions {
	o.leading = px
	return o
}
