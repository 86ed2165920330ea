package font

import (
	"errors"
	"strings"
	"testing"
)

// tinyBDF builds a minimal valid BDF with the given bounding box line, for
// exercising the metric validation paths.
func tinyBDF(boundingBox string) string {
	return "STARTFONT 2.1\n" +
		boundingBox + "\n" +
		"STARTCHAR A\nENCODING 65\nDWIDTH 4 0\nBBX 3 5 0 0\nBITMAP\n40\nA0\nE0\nA0\nA0\nENDCHAR\n" +
		"ENDFONT\n"
}

// TestLoadMetrics verifies the metrics of the bundled fixtures: the height is
// the bounding box height and the baseline is height + y-offset.
func TestLoadMetrics(t *testing.T) {
	tests := []struct {
		path     string
		height   int
		baseline int
		glyphs   int
	}{
		{"testdata/10x20.bdf", 20, 16, 8},
		{"testdata/4x6.bdf", 6, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fnt, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			defer func() {
				_ = fnt.Close()
			}()
			if fnt.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", fnt.Height(), tt.height)
			}
			if fnt.Baseline() != tt.baseline {
				t.Errorf("Baseline() = %d, want %d", fnt.Baseline(), tt.baseline)
			}
			if fnt.GlyphCount() != tt.glyphs {
				t.Errorf("GlyphCount() = %d, want %d", fnt.GlyphCount(), tt.glyphs)
			}
			if fnt.Name() == "" {
				t.Error("Name() is empty")
			}
		})
	}
}

// TestGlyphAdvance verifies per-glyph advances and the DEFAULT_CHAR fallback
// for uncovered runes.
func TestGlyphAdvance(t *testing.T) {
	fnt, err := Load("testdata/10x20.bdf")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer func() {
		_ = fnt.Close()
	}()

	if got := fnt.GlyphAdvance('M'); got != 10 {
		t.Errorf("GlyphAdvance('M') = %d, want 10", got)
	}
	// '∀' is not covered; the advance falls back to DEFAULT_CHAR (space).
	if got := fnt.GlyphAdvance('∀'); got != 10 {
		t.Errorf("GlyphAdvance fallback = %d, want 10", got)
	}
	if _, ok := fnt.Glyph('∀'); ok {
		t.Error("Glyph() reported coverage for an uncovered rune")
	}
}

// TestGlyphBitmap verifies bitmap rows are left-aligned with bit 31 as the
// leftmost pixel.
func TestGlyphBitmap(t *testing.T) {
	fnt, err := Load("testdata/4x6.bdf")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer func() {
		_ = fnt.Close()
	}()

	g, ok := fnt.Glyph('A')
	if !ok {
		t.Fatal("Glyph('A') not found")
	}
	if g.Width != 3 || g.Height != 5 || g.Advance != 4 {
		t.Fatalf("Glyph('A') metrics = %dx%d advance %d, want 3x5 advance 4", g.Width, g.Height, g.Advance)
	}
	wantRows := []uint32{0x40 << 24, 0xA0 << 24, 0xE0 << 24, 0xA0 << 24, 0xA0 << 24}
	if len(g.Rows) != len(wantRows) {
		t.Fatalf("got %d rows, want %d", len(g.Rows), len(wantRows))
	}
	for i, want := range wantRows {
		if g.Rows[i] != want {
			t.Errorf("row %d = %#x, want %#x", i, g.Rows[i], want)
		}
	}
}

// TestLoadErrors verifies the failure modes of Load itself.
func TestLoadErrors(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.bdf"); err == nil {
		t.Error("Load of missing file succeeded")
	}
	if _, err := Load("testdata/bad\x00path.bdf"); !errors.Is(err, ErrBadPath) {
		t.Errorf("Load of NUL path: error = %v, want ErrBadPath", err)
	}
}

// TestParseMalformed verifies the parser rejects structurally broken input.
func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrMalformed},
		{
			"missing STARTFONT",
			"FONTBOUNDINGBOX 4 6 0 -1\nSTARTCHAR A\nENCODING 65\nENDCHAR\nENDFONT\n",
			ErrMalformed,
		},
		{
			"no glyphs",
			"STARTFONT 2.1\nFONTBOUNDINGBOX 4 6 0 -1\nENDFONT\n",
			ErrMalformed,
		},
		{
			"truncated bounding box",
			tinyBDF("FONTBOUNDINGBOX 4 6"),
			ErrMalformed,
		},
		{
			"non-numeric bounding box",
			tinyBDF("FONTBOUNDINGBOX 4 tall 0 -1"),
			ErrMalformed,
		},
		{
			"eof inside glyph",
			"STARTFONT 2.1\nFONTBOUNDINGBOX 4 6 0 -1\nSTARTCHAR A\nENCODING 65\nBITMAP\n40\n",
			ErrMalformed,
		},
		{
			"bad bitmap hex",
			"STARTFONT 2.1\nFONTBOUNDINGBOX 4 6 0 -1\nSTARTCHAR A\nENCODING 65\nDWIDTH 4 0\nBBX 3 5 0 0\nBITMAP\nZZ\nENDCHAR\nENDFONT\n",
			ErrMalformed,
		},
		{
			"baseline outside box",
			tinyBDF("FONTBOUNDINGBOX 4 6 0 -8"),
			ErrMalformed,
		},
		{
			"zero height",
			tinyBDF("FONTBOUNDINGBOX 4 0 0 0"),
			ErrNotLoaded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestParseSkipsUnencodedGlyphs verifies ENCODING -1 glyphs are dropped.
func TestParseSkipsUnencodedGlyphs(t *testing.T) {
	in := "STARTFONT 2.1\nFONTBOUNDINGBOX 4 6 0 -1\n" +
		"STARTCHAR A\nENCODING 65\nDWIDTH 4 0\nBBX 1 1 0 0\nBITMAP\n80\nENDCHAR\n" +
		"STARTCHAR uniFFFF\nENCODING -1\nDWIDTH 4 0\nBBX 1 1 0 0\nBITMAP\n80\nENDCHAR\n" +
		"ENDFONT\n"
	fnt, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if fnt.GlyphCount() != 1 {
		t.Errorf("GlyphCount() = %d, want 1", fnt.GlyphCount())
	}
}

// TestCloseIdempotent verifies Close releases once and later calls are no-ops.
func TestCloseIdempotent(t *testing.T) {
	fnt, err := Load("testdata/4x6.bdf")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := fnt.Close(); err != nil {
			t.Fatalf("Close() error: %v", err)
		}
	}
	if _, ok := fnt.Glyph('A'); ok {
		t.Error("Glyph() succeeded after Close")
	}
	if got := fnt.GlyphAdvance('A'); got != 0 {
		t.Errorf("GlyphAdvance after Close = %d, want 0", got)
	}
	if fnt.GlyphCount() != 0 {
		t.Errorf("GlyphCount after Close = %d, want 0", fnt.GlyphCount())
	}
}
