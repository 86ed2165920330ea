package ledgrid

import (
	"image"

	"github.com/ledgrid/ledgrid/font"
	"github.com/ledgrid/ledgrid/text"
)

// Canvas is a width x height pixel buffer that a session can scan out.
//
// A canvas is either live (owned by the Matrix, currently displayed) or
// off-screen (owned by the caller). Ownership transfers only through
// [Matrix.Swap]. Read-only queries (Size, At) are safe from any goroutine;
// drawing is reserved to the current owner.
type Canvas struct {
	width  int
	height int
	pix    []uint8 // RGB format, 3 bytes per pixel
}

// newCanvas creates a canvas with the given dimensions.
func newCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// Size returns the width and height of the canvas in pixels.
// It reflects the configured panel geometry (cols*chain by rows*parallel).
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Pix returns the raw pixel data (RGB format, 3 bytes per pixel).
// Drivers scan this out directly; treat it as owned by whoever owns the
// canvas.
func (c *Canvas) Pix() []uint8 {
	return c.pix
}

// Set writes one pixel. Out-of-range coordinates are silently ignored:
// chained or rotated panel layouts can have sparse addressable regions, so
// permissive writes match physical-display semantics.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 3
	c.pix[i+0] = col.R
	c.pix[i+1] = col.G
	c.pix[i+2] = col.B
}

// At returns the color of a single pixel. Out-of-range coordinates
// yield the zero color.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	i := (y*c.width + x) * 3
	return Color{R: c.pix[i+0], G: c.pix[i+1], B: c.pix[i+2]}
}

// Clear sets every pixel to black. Only the buffer changes; the displayed
// image is unaffected until the buffer is live or swapped in.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = 0
	}
}

// Fill sets every pixel to the given color.
func (c *Canvas) Fill(col Color) {
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i+0] = col.R
		c.pix[i+1] = col.G
		c.pix[i+2] = col.B
	}
}

// DrawLine draws a straight, one pixel wide line from (x0,y0) to (x1,y1).
// No anti-aliasing; endpoints are included.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a one pixel wide circle centered at (x,y).
// A radius of 0 plots the center pixel.
func (c *Canvas) DrawCircle(x, y, radius int, col Color) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		c.Set(x, y, col)
		return
	}
	cx, cy := radius, 0
	err := 1 - radius
	for cx >= cy {
		c.Set(x+cx, y+cy, col)
		c.Set(x+cy, y+cx, col)
		c.Set(x-cy, y+cx, col)
		c.Set(x-cx, y+cy, col)
		c.Set(x-cx, y-cy, col)
		c.Set(x-cy, y-cx, col)
		c.Set(x+cy, y-cx, col)
		c.Set(x+cx, y-cy, col)
		cy++
		if err < 0 {
			err += 2*cy + 1
		} else {
			cx--
			err += 2*(cy-cx) + 1
		}
	}
}

// DrawText lays out and draws s using fnt at the position and layout given
// by opts. The y coordinate of the position is the text baseline. It returns
// the total advance consumed in pixels: horizontal for the Horizontal
// layout, vertical for Vertical and Wrapped.
//
// Strings containing an interior NUL byte are rejected with
// [ErrEmbeddedNUL]; wrapped layouts narrower than the widest glyph are
// rejected with an error from the text package. Glyphs absent from the font
// are skipped.
func (c *Canvas) DrawText(fnt *font.Font, s string, opts TextOptions) (int, error) {
	if hasEmbeddedNUL(s) {
		return 0, ErrEmbeddedNUL
	}
	if fnt == nil {
		return 0, text.ErrNilMeasurer
	}
	lay, err := text.LayoutString(s, fnt, text.Options{
		Mode:      opts.layout.mode,
		LineWidth: opts.layout.lineWidth,
		Kerning:   opts.kerningOffset,
		Leading:   opts.leading,
	})
	if err != nil {
		return 0, err
	}
	for _, line := range lay.Lines {
		for _, g := range line.Glyphs {
			c.drawGlyph(fnt, g.Rune, opts.x+g.X, opts.y+g.Y, opts.color)
		}
	}
	return lay.Advance, nil
}

// drawGlyph rasterizes one glyph bitmap with its baseline origin at (x,y).
func (c *Canvas) drawGlyph(fnt *font.Font, r rune, x, y int, col Color) {
	g, ok := fnt.Glyph(r)
	if !ok {
		return
	}
	// BDF places the bitmap top edge at baseline - (bbx height + y offset).
	top := y - g.Height - g.YOffset
	for row := 0; row < g.Height && row < len(g.Rows); row++ {
		bits := g.Rows[row]
		for px := 0; px < g.Width && px < 32; px++ {
			if bits&(1<<(31-uint(px))) != 0 {
				c.Set(x+g.XOffset+px, top+row, col)
			}
		}
	}
}

// ToImage converts the canvas to an image.RGBA, for snapshots and tests.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			i := (y*c.width + x) * 3
			o := img.PixOffset(x, y)
			img.Pix[o+0] = c.pix[i+0]
			img.Pix[o+1] = c.pix[i+1]
			img.Pix[o+2] = c.pix[i+2]
			img.Pix[o+3] = 255
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
