// Package text computes glyph placement for LED matrix text rendering.
//
// The package is pure computation: given a string, a [Measurer] providing
// per-glyph advance widths and the line height, and layout [Options], it
// produces the positioned glyphs that a canvas then rasterizes. No pixels
// are touched here.
//
// Three layout modes exist: a single horizontal line, a single vertical
// column, and wrapped multi-line layout. Wrapping chooses break points among
// word boundaries by dynamic programming, minimizing the total squared slack
// of all lines but the last (the optimal-fit paragraph objective), rather
// than greedily packing each line.
package text
