package text

// Measurer supplies the font metrics layout needs: the advance width of
// individual glyphs and the line height. *font.Font implements Measurer.
// Implementations must be safe for concurrent read access.
type Measurer interface {
	// GlyphAdvance returns the horizontal advance of r in pixels.
	// Unknown glyphs report the font's default glyph advance, or 0.
	GlyphAdvance(r rune) int

	// Height returns the line height in pixels.
	Height() int
}

// StringWidth returns the horizontal extent of s laid out on one line:
// the sum of the glyph advances plus kerning between consecutive glyphs.
func StringWidth(s string, m Measurer, kerning int) int {
	width := 0
	n := 0
	for _, r := range s {
		width += m.GlyphAdvance(r)
		n++
	}
	if n > 1 {
		width += (n - 1) * kerning
	}
	return width
}

// maxGlyphWidth returns the widest single glyph advance in s.
func maxGlyphWidth(s string, m Measurer) int {
	max := 0
	for _, r := range s {
		if w := m.GlyphAdvance(r); w > max {
			max = w
		}
	}
	return max
}
