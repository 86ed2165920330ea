package font

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseBDF reads a BDF font description.
//
// The subset understood here is the one LED fonts actually use: STARTFONT,
// FONT, FONTBOUNDINGBOX, DEFAULT_CHAR, and per-glyph STARTCHAR sections with
// ENCODING, DWIDTH, BBX and BITMAP. Unknown keywords are skipped. Height is
// the font bounding box height and the baseline sits at height + y-offset,
// matching how BDF positions the box relative to the baseline.
func parseBDF(r io.Reader) (*Font, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fnt := &Font{glyphs: make(map[rune]Glyph)}
	var fbbH, fbbYoff int
	sawStart := false
	sawBox := false

scan:
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "STARTFONT":
			sawStart = true
		case "FONT":
			if len(fields) > 1 {
				fnt.name = strings.TrimSpace(line[len("FONT"):])
			}
		case "FONTBOUNDINGBOX":
			if len(fields) < 5 {
				return nil, ErrMalformed
			}
			h, err1 := strconv.Atoi(fields[2])
			yoff, err2 := strconv.Atoi(fields[4])
			if err1 != nil || err2 != nil {
				return nil, ErrMalformed
			}
			fbbH, fbbYoff = h, yoff
			sawBox = true
		case "DEFAULT_CHAR":
			if len(fields) > 1 {
				if n, err := strconv.Atoi(fields[1]); err == nil && n >= 0 {
					fnt.defaultRune = rune(n)
					fnt.hasDefault = true
				}
			}
		case "STARTCHAR":
			if !sawStart {
				return nil, ErrMalformed
			}
			g, enc, err := parseChar(sc)
			if err != nil {
				return nil, err
			}
			// ENCODING -1 marks glyphs outside the target charset.
			if enc >= 0 {
				fnt.glyphs[rune(enc)] = g
			}
		case "ENDFONT":
			break scan
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("font: reading BDF: %w", err)
	}

	if !sawStart || !sawBox || len(fnt.glyphs) == 0 {
		return nil, ErrMalformed
	}
	fnt.height = fbbH
	fnt.baseline = fbbH + fbbYoff
	if fnt.height <= 0 {
		return nil, ErrNotLoaded
	}
	if fnt.baseline <= 0 || fnt.baseline > fnt.height {
		return nil, ErrMalformed
	}
	return fnt, nil
}

// parseChar reads one STARTCHAR..ENDCHAR section, the STARTCHAR line having
// been consumed already.
func parseChar(sc *bufio.Scanner) (Glyph, int, error) {
	var g Glyph
	enc := -1
	inBitmap := false

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if inBitmap {
			if line == "ENDCHAR" {
				return g, enc, nil
			}
			row, err := parseBitmapRow(line)
			if err != nil {
				return g, 0, err
			}
			g.Rows = append(g.Rows, row)
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "ENCODING":
			if len(fields) < 2 {
				return g, 0, ErrMalformed
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return g, 0, ErrMalformed
			}
			enc = n
		case "DWIDTH":
			if len(fields) < 2 {
				return g, 0, ErrMalformed
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return g, 0, ErrMalformed
			}
			g.Advance = n
		case "BBX":
			if len(fields) < 5 {
				return g, 0, ErrMalformed
			}
			var vals [4]int
			for i := 0; i < 4; i++ {
				n, err := strconv.Atoi(fields[i+1])
				if err != nil {
					return g, 0, ErrMalformed
				}
				vals[i] = n
			}
			g.Width, g.Height, g.XOffset, g.YOffset = vals[0], vals[1], vals[2], vals[3]
		case "BITMAP":
			inBitmap = true
		case "ENDCHAR":
			return g, enc, nil
		}
	}
	// EOF inside a glyph section.
	return g, 0, ErrMalformed
}

// parseBitmapRow converts one hex bitmap line to a left-aligned row.
// Bit 31 is the leftmost pixel; rows wider than 32 pixels are truncated.
func parseBitmapRow(line string) (uint32, error) {
	if len(line) > 8 {
		line = line[:8]
	}
	v, err := strconv.ParseUint(line, 16, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	return uint32(v) << (32 - 4*len(line)), nil
}
