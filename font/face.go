package font

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face adapts the font to the golang.org/x/image/font Face interface, so
// loaded BDF fonts can be used with font.Drawer and other x/image text
// consumers. The returned face shares the font's glyph table; closing the
// face does not close the font.
func (f *Font) Face() xfont.Face {
	return &bdfFace{f: f}
}

type bdfFace struct {
	f *Font
}

func (bf *bdfFace) Close() error { return nil }

func (bf *bdfFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	g, ok := bf.f.Glyph(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Floor()
	y := dot.Y.Floor()
	dr := image.Rect(
		x+g.XOffset,
		y-g.Height-g.YOffset,
		x+g.XOffset+g.Width,
		y-g.YOffset,
	)

	mask := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height && row < len(g.Rows); row++ {
		bits := g.Rows[row]
		for px := 0; px < g.Width && px < 32; px++ {
			if bits&(1<<(31-uint(px))) != 0 {
				mask.Pix[row*mask.Stride+px] = 0xff
			}
		}
	}
	return dr, mask, image.Point{}, fixed.I(g.Advance), true
}

func (bf *bdfFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	g, ok := bf.f.Glyph(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds := fixed.R(
		g.XOffset,
		-(g.Height + g.YOffset),
		g.XOffset+g.Width,
		-g.YOffset,
	)
	return bounds, fixed.I(g.Advance), true
}

func (bf *bdfFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	g, ok := bf.f.Glyph(r)
	if !ok {
		return 0, false
	}
	return fixed.I(g.Advance), true
}

// Kern always returns 0: BDF fonts carry no kerning pairs.
func (bf *bdfFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (bf *bdfFace) Metrics() xfont.Metrics {
	return xfont.Metrics{
		Height:  fixed.I(bf.f.height),
		Ascent:  fixed.I(bf.f.baseline),
		Descent: fixed.I(bf.f.height - bf.f.baseline),
	}
}
