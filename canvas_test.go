package ledgrid

import (
	"errors"
	"testing"

	"github.com/ledgrid/ledgrid/font"
	"github.com/ledgrid/ledgrid/text"
)

// loadTestFont loads the 10x20 fixture: every glyph advances 10 pixels,
// height 20, baseline 16.
func loadTestFont(t *testing.T) *font.Font {
	t.Helper()
	fnt, err := font.Load("font/testdata/10x20.bdf")
	if err != nil {
		t.Fatalf("loading test font: %v", err)
	}
	t.Cleanup(func() { _ = fnt.Close() })
	return fnt
}

// TestCanvasSize verifies Size reflects construction dimensions.
func TestCanvasSize(t *testing.T) {
	c := newCanvas(64, 32)
	w, h := c.Size()
	if w != 64 || h != 32 {
		t.Errorf("Size() = (%d, %d), want (64, 32)", w, h)
	}
}

// TestCanvasSetAt verifies a written pixel reads back.
func TestCanvasSetAt(t *testing.T) {
	c := newCanvas(8, 8)
	c.Set(3, 5, RGB(10, 20, 30))
	if got := c.At(3, 5); got != RGB(10, 20, 30) {
		t.Errorf("At(3, 5) = %+v", got)
	}
	if got := c.At(4, 5); got != Black {
		t.Errorf("At(4, 5) = %+v, want black", got)
	}
}

// TestCanvasSet_OutOfBounds verifies out-of-range writes are silently
// ignored and never panic.
func TestCanvasSet_OutOfBounds(t *testing.T) {
	c := newCanvas(8, 8)
	original := make([]uint8, len(c.Pix()))
	copy(original, c.Pix())

	oob := []struct{ x, y int }{
		{-1, 4}, {8, 4}, {4, -1}, {4, 8},
		{-100, -100}, {100, 100},
	}
	for _, p := range oob {
		c.Set(p.x, p.y, White)
	}

	for i, v := range c.Pix() {
		if v != original[i] {
			t.Fatalf("out-of-bounds write modified data at index %d", i)
		}
	}
	// Out-of-range reads yield the zero color.
	if got := c.At(-1, 0); got != Black {
		t.Errorf("At(-1, 0) = %+v, want zero color", got)
	}
}

// TestCanvasClear verifies every pixel reads back as the zero color.
func TestCanvasClear(t *testing.T) {
	c := newCanvas(16, 9)
	c.Fill(RGB(1, 2, 3))
	c.Clear()
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := c.At(x, y); got != Black {
				t.Fatalf("At(%d, %d) = %+v after Clear, want black", x, y, got)
			}
		}
	}
}

// TestCanvasFill verifies every pixel reads back as the fill color.
func TestCanvasFill(t *testing.T) {
	c := newCanvas(16, 9)
	want := RGB(9, 8, 7)
	c.Fill(want)
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := c.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %+v after Fill, want %+v", x, y, got, want)
			}
		}
	}
}

// TestDrawLine verifies endpoints and straight segments.
func TestDrawLine(t *testing.T) {
	c := newCanvas(16, 16)
	c.DrawLine(2, 3, 10, 3, White)
	for x := 2; x <= 10; x++ {
		if c.At(x, 3) != White {
			t.Errorf("horizontal line missing pixel at (%d, 3)", x)
		}
	}
	if c.At(1, 3) != Black || c.At(11, 3) != Black {
		t.Error("horizontal line overshoots its endpoints")
	}

	c.Clear()
	c.DrawLine(5, 12, 5, 2, White)
	for y := 2; y <= 12; y++ {
		if c.At(5, y) != White {
			t.Errorf("vertical line missing pixel at (5, %d)", y)
		}
	}

	c.Clear()
	c.DrawLine(0, 0, 7, 7, White)
	for i := 0; i <= 7; i++ {
		if c.At(i, i) != White {
			t.Errorf("diagonal line missing pixel at (%d, %d)", i, i)
		}
	}
}

// TestDrawCircle verifies the cardinal points land on the circle and the
// center stays clear.
func TestDrawCircle(t *testing.T) {
	c := newCanvas(32, 32)
	c.DrawCircle(16, 16, 5, White)
	for _, p := range []struct{ x, y int }{
		{21, 16}, {11, 16}, {16, 21}, {16, 11},
	} {
		if c.At(p.x, p.y) != White {
			t.Errorf("circle missing cardinal point (%d, %d)", p.x, p.y)
		}
	}
	if c.At(16, 16) != Black {
		t.Error("circle filled its center")
	}

	c.Clear()
	c.DrawCircle(3, 3, 0, White)
	if c.At(3, 3) != White {
		t.Error("radius 0 should plot the center pixel")
	}
}

// TestDrawTextAdvance verifies the horizontal advance formula:
// sum of glyph widths plus (k-1) * kerning offset.
func TestDrawTextAdvance(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(128, 32)

	tests := []struct {
		name    string
		text    string
		kerning int
		want    int
	}{
		{"nine glyphs no kerning", "Mah boy! ", 0, 90},
		{"nine glyphs kerning 2", "Mah boy! ", 2, 90 + 8*2},
		{"single glyph", "M", 5, 10},
		{"empty", "", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Clear()
			opts := DefaultTextOptions().Position(0, 16).KerningOffset(tt.kerning)
			got, err := c.DrawText(fnt, tt.text, opts)
			if err != nil {
				t.Fatalf("DrawText() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DrawText() advance = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDrawTextGlyphCells draws "Mah boy! " at baseline 16 and verifies lit
// pixels appear only in non-space glyph cells, background elsewhere.
func TestDrawTextGlyphCells(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(100, 32)

	opts := DefaultTextOptions().Position(0, 16).Color(Green)
	advance, err := c.DrawText(fnt, "Mah boy! ", opts)
	if err != nil {
		t.Fatalf("DrawText() error: %v", err)
	}
	if advance != 90 {
		t.Fatalf("advance = %d, want 90", advance)
	}

	cellLit := func(cell int) bool {
		for x := cell * 10; x < (cell+1)*10; x++ {
			for y := 0; y < 32; y++ {
				if c.At(x, y) != Black {
					return true
				}
			}
		}
		return false
	}

	// "Mah boy! ": spaces at cells 3 and 8.
	for cell := 0; cell < 9; cell++ {
		wantLit := cell != 3 && cell != 8
		if got := cellLit(cell); got != wantLit {
			t.Errorf("cell %d lit = %v, want %v", cell, got, wantLit)
		}
	}
	// Nothing beyond the advance.
	for x := 90; x < 100; x++ {
		for y := 0; y < 32; y++ {
			if c.At(x, y) != Black {
				t.Fatalf("pixel (%d, %d) lit beyond the text advance", x, y)
			}
		}
	}
}

// TestDrawTextColor verifies glyph pixels use the configured color.
func TestDrawTextColor(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(16, 32)

	want := RGB(0, 127, 0)
	if _, err := c.DrawText(fnt, "M", DefaultTextOptions().Position(0, 16).Color(want)); err != nil {
		t.Fatalf("DrawText() error: %v", err)
	}

	found := false
	for y := 0; y < 32 && !found; y++ {
		for x := 0; x < 16 && !found; x++ {
			switch c.At(x, y) {
			case Black:
			case want:
				found = true
			default:
				t.Fatalf("pixel (%d, %d) = %+v, want %+v or black", x, y, c.At(x, y), want)
			}
		}
	}
	if !found {
		t.Error("no glyph pixels drawn")
	}
}

// TestDrawTextEmbeddedNUL verifies an interior NUL byte surfaces as a
// recoverable error, not a crash or truncated draw.
func TestDrawTextEmbeddedNUL(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(32, 32)

	_, err := c.DrawText(fnt, "a\x00b", DefaultTextOptions().Position(0, 16))
	if !errors.Is(err, ErrEmbeddedNUL) {
		t.Fatalf("DrawText() error = %v, want ErrEmbeddedNUL", err)
	}
	// Nothing was drawn.
	for i, v := range c.Pix() {
		if v != 0 {
			t.Fatalf("pixel data modified at index %d after rejected draw", i)
		}
	}
}

// TestDrawTextVertical verifies the vertical advance: k glyphs consume
// k*height + (k-1)*kerning pixels.
func TestDrawTextVertical(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(16, 128)

	opts := DefaultTextOptions().Position(2, 16).Layout(Vertical()).KerningOffset(3)
	got, err := c.DrawText(fnt, "Mah", opts)
	if err != nil {
		t.Fatalf("DrawText() error: %v", err)
	}
	want := 3*20 + 2*3
	if got != want {
		t.Errorf("vertical advance = %d, want %d", got, want)
	}
}

// TestDrawTextWrapped verifies wrapped drawing reports the vertical extent
// and respects the line width.
func TestDrawTextWrapped(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(64, 128)

	opts := DefaultTextOptions().
		Position(0, 16).
		Layout(Wrapped(40)).
		Leading(2)
	// Words of 30, 30, 10, 10 pixels at width 40 force the lines
	// "Mah" / "boy" / "o y": 3 lines of height 20 with 2 leading between.
	got, err := c.DrawText(fnt, "Mah boy o y", opts)
	if err != nil {
		t.Fatalf("DrawText() error: %v", err)
	}
	if want := 3*20 + 2*2; got != want {
		t.Errorf("wrapped advance = %d, want %d", got, want)
	}
	if _, err := c.DrawText(fnt, "Mah", DefaultTextOptions().Layout(Wrapped(5))); !errors.Is(err, text.ErrLineWidth) {
		t.Errorf("narrow wrap error = %v, want text.ErrLineWidth", err)
	}
}

// TestDrawTextUnknownGlyphSkipped verifies runes without glyphs advance but
// draw nothing.
func TestDrawTextUnknownGlyphSkipped(t *testing.T) {
	fnt := loadTestFont(t)
	c := newCanvas(64, 32)

	// 'Z' is not in the fixture; it falls back to the default glyph advance.
	got, err := c.DrawText(fnt, "Z", DefaultTextOptions().Position(0, 16))
	if err != nil {
		t.Fatalf("DrawText() error: %v", err)
	}
	if got != 10 {
		t.Errorf("advance = %d, want default glyph advance 10", got)
	}
}
