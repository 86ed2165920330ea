package font

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for font package.
var (
	// ErrBadPath is returned when a font path contains an embedded NUL
	// byte and so cannot be represented as a filesystem path.
	ErrBadPath = errors.New("font: path contains an embedded NUL byte")

	// ErrMalformed is returned when BDF data cannot be parsed.
	ErrMalformed = errors.New("font: malformed BDF data")

	// ErrNotLoaded is returned when a parsed font reports a non-positive
	// height. The underlying format uses a sentinel height for fonts that
	// never finished loading; it is translated to an explicit error here
	// so it can never escape as a valid-looking metric.
	ErrNotLoaded = errors.New("font: font reports no height (not loaded)")
)

// Glyph is one glyph's bitmap and metrics, in BDF terms.
type Glyph struct {
	// Width and Height are the bitmap bounding box (BBX) in pixels.
	Width, Height int

	// XOffset and YOffset position the bounding box relative to the
	// baseline origin (BBX offsets). YOffset is typically negative for
	// glyphs with descenders.
	XOffset, YOffset int

	// Advance is how far the pen moves after the glyph (DWIDTH).
	Advance int

	// Rows holds one bitmap row per scanline, top to bottom, with the
	// leftmost pixel in bit 31. Widths beyond 32 pixels are truncated.
	Rows []uint32
}

// Font is a loaded BDF bitmap font. It is read-only after Load and safe for
// concurrent use until Close.
type Font struct {
	name     string
	height   int
	baseline int
	glyphs   map[rune]Glyph

	defaultRune rune
	hasDefault  bool

	closed bool
}

// Load reads a BDF font description from the given file path.
// On failure no handle is produced and nothing needs releasing.
func Load(path string) (*Font, error) {
	for i := 0; i < len(path); i++ {
		if path[i] == 0 {
			return nil, ErrBadPath
		}
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("font: loading %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	fnt, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("font: loading %q: %w", path, err)
	}
	return fnt, nil
}

// Parse reads a BDF font description from r. Use it for embedded fonts;
// Load is the file-path convenience wrapper.
func Parse(r io.Reader) (*Font, error) {
	return parseBDF(r)
}

// Name returns the font's FONT property, or "" if absent.
func (f *Font) Name() string {
	return f.name
}

// Height returns the line height in pixels, from top to bottom of the glyph
// box. It is always positive for a successfully loaded font.
func (f *Font) Height() int {
	return f.height
}

// Baseline returns the distance in pixels from the top line to the
// baseline. Callers use it to align text vertically: drawing at
// y = top + Baseline() puts the glyph box's top edge at top.
func (f *Font) Baseline() int {
	return f.baseline
}

// Glyph returns the glyph for r. After Close, no glyphs are available.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// GlyphAdvance returns the horizontal advance of r in pixels, falling back
// to the font's default glyph (DEFAULT_CHAR) for runes it does not cover,
// and 0 when there is no default. Together with Height this satisfies the
// text package's Measurer.
func (f *Font) GlyphAdvance(r rune) int {
	if g, ok := f.glyphs[r]; ok {
		return g.Advance
	}
	if f.hasDefault {
		if g, ok := f.glyphs[f.defaultRune]; ok {
			return g.Advance
		}
	}
	return 0
}

// GlyphCount returns the number of glyphs the font covers.
func (f *Font) GlyphCount() int {
	return len(f.glyphs)
}

// Close releases the glyph table. Exactly one release happens no matter how
// often Close is called; using the font afterwards finds no glyphs.
// Implements io.Closer.
func (f *Font) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.glyphs = nil
	return nil
}
