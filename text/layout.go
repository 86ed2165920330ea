package text

// unknownStr is the String() result for out-of-range enum values.
const unknownStr = "Unknown"

// Mode selects how glyphs are arranged.
type Mode uint8

const (
	// ModeHorizontal places glyphs left-to-right on a single line
	// (zero value, the default).
	ModeHorizontal Mode = iota

	// ModeVertical places glyphs top-to-bottom in a single column.
	ModeVertical

	// ModeWrapped places glyphs over multiple lines, breaking at word
	// boundaries so that no line exceeds Options.LineWidth.
	ModeWrapped
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeHorizontal:
		return "Horizontal"
	case ModeVertical:
		return "Vertical"
	case ModeWrapped:
		return "Wrapped"
	default:
		return unknownStr
	}
}

// Options configures text layout behavior.
type Options struct {
	// Mode selects the glyph arrangement.
	Mode Mode

	// LineWidth is the maximum line width in pixels for ModeWrapped.
	// It must be positive and no narrower than the widest single glyph.
	LineWidth int

	// Kerning is extra horizontal spacing, in pixels, inserted between
	// consecutive glyphs. May be negative.
	Kerning int

	// Leading is extra vertical spacing, in pixels, inserted between
	// wrapped lines.
	Leading int

	// Direction is the base paragraph direction. DirectionAuto (default)
	// detects it from the text.
	Direction Direction
}

// Glyph is one positioned glyph. X and Y are relative to the layout origin;
// Y is the baseline of the glyph's line.
type Glyph struct {
	Rune rune
	X, Y int
}

// Line is one laid-out line of text.
type Line struct {
	// Glyphs are the line's glyphs in visual order.
	Glyphs []Glyph

	// Width is the horizontal extent of the line in pixels.
	Width int

	// Y is the baseline of this line relative to the layout origin.
	Y int
}

// Layout is the result of laying out a string: glyph positions grouped into
// lines, plus the total advance the text consumes.
type Layout struct {
	// Lines in top-to-bottom order. Horizontal and Vertical layouts
	// produce exactly one.
	Lines []Line

	// Width is the widest line's extent in pixels.
	Width int

	// Advance is the total advance consumed: horizontal extent for
	// ModeHorizontal, vertical extent for ModeVertical and ModeWrapped.
	// Callers use it to chain draw calls.
	Advance int
}

// LayoutString computes glyph placement for s. It is pure: the same inputs
// always produce the same layout, and nothing is drawn.
func LayoutString(s string, m Measurer, opts Options) (*Layout, error) {
	if m == nil {
		return nil, ErrNilMeasurer
	}
	switch opts.Mode {
	case ModeVertical:
		return layoutVertical(s, m, opts)
	case ModeWrapped:
		return layoutWrapped(s, m, opts)
	default:
		return layoutHorizontal(s, m, opts)
	}
}

// resolveDirection applies auto-detection when no explicit direction is set.
func resolveDirection(s string, d Direction) Direction {
	if d == DirectionAuto {
		return BaseDirection(s)
	}
	return d
}

// lineAt builds one line of glyphs at baseline y. Kerning is inserted
// between consecutive glyphs only, so a k-glyph line is
// sum(advances) + (k-1)*kerning wide.
func lineAt(runes []rune, m Measurer, kerning, y int) Line {
	glyphs := make([]Glyph, 0, len(runes))
	x := 0
	for i, r := range runes {
		if i > 0 {
			x += kerning
		}
		glyphs = append(glyphs, Glyph{Rune: r, X: x, Y: y})
		x += m.GlyphAdvance(r)
	}
	return Line{Glyphs: glyphs, Width: x, Y: y}
}

func layoutHorizontal(s string, m Measurer, opts Options) (*Layout, error) {
	runes := []rune(s)
	if len(runes) == 0 {
		return &Layout{}, nil
	}
	runes = visualOrder(runes, resolveDirection(s, opts.Direction))
	line := lineAt(runes, m, opts.Kerning, 0)
	return &Layout{
		Lines:   []Line{line},
		Width:   line.Width,
		Advance: line.Width,
	}, nil
}

func layoutVertical(s string, m Measurer, opts Options) (*Layout, error) {
	runes := []rune(s)
	if len(runes) == 0 {
		return &Layout{}, nil
	}
	h := m.Height()
	glyphs := make([]Glyph, 0, len(runes))
	width := 0
	y := 0
	for i, r := range runes {
		if i > 0 {
			y += h + opts.Kerning
		}
		glyphs = append(glyphs, Glyph{Rune: r, X: 0, Y: y})
		if w := m.GlyphAdvance(r); w > width {
			width = w
		}
	}
	advance := y + h
	line := Line{Glyphs: glyphs, Width: width, Y: 0}
	return &Layout{
		Lines:   []Line{line},
		Width:   width,
		Advance: advance,
	}, nil
}

func layoutWrapped(s string, m Measurer, opts Options) (*Layout, error) {
	words := splitWords(s)
	if len(words) == 0 {
		return &Layout{}, nil
	}
	if opts.LineWidth <= 0 || maxGlyphWidth(s, m) > opts.LineWidth {
		return nil, ErrLineWidth
	}

	broken := wrapOptimal(words, m, opts.Kerning, opts.LineWidth)
	dir := resolveDirection(s, opts.Direction)
	h := m.Height()

	lines := make([]Line, 0, len(broken))
	width := 0
	y := 0
	for i, lineWords := range broken {
		if i > 0 {
			y += h + opts.Leading
		}
		runes := visualOrder([]rune(joinWords(lineWords)), dir)
		line := lineAt(runes, m, opts.Kerning, y)
		if line.Width > width {
			width = line.Width
		}
		lines = append(lines, line)
	}

	advance := len(lines)*h + (len(lines)-1)*opts.Leading
	return &Layout{
		Lines:   lines,
		Width:   width,
		Advance: advance,
	}, nil
}
