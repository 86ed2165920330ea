// Package font loads BDF bitmap fonts for LED matrix rendering.
//
// BDF is the only supported format: LED panels want small, pixel-exact
// glyphs, and the BDF ecosystem (terminus, tom-thumb, the classic X11 misc
// fonts) covers that space completely. A loaded [Font] is read-only and may
// be shared across goroutines for drawing; release it exactly once with
// Close.
package font
