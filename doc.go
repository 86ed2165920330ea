// Package ledgrid drives RGB LED matrix panels from Go.
//
// # Overview
//
// ledgrid exposes a pixel canvas, BDF bitmap fonts, a text layout engine
// with optimal line wrapping, and a double-buffered frame swap protocol on
// top of a pluggable scan-out driver. The panel refresh runs continuously in
// the background; the application draws into off-screen buffers and swaps
// them in whole, so a torn frame is never shown.
//
// # Quick Start
//
//	import "github.com/ledgrid/ledgrid"
//
//	m, err := ledgrid.New(ledgrid.WithCols(64), ledgrid.WithRows(32))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	c := m.OffscreenCanvas()
//	for {
//		c.Clear()
//		c.Fill(ledgrid.RGB(128, 0, 0))
//		c = m.Swap(c) // returns the previously displayed buffer
//	}
//
// # Drivers
//
// The default driver is an in-memory emulator suitable for tests and
// headless use. Hardware and preview backends live in subpackages:
//   - driver/gpio: HUB75 bit-banging through periph.io
//   - driver/term: terminal preview through tcell
//   - driver/web: browser preview over HTTP and WebSocket
//
// Inject one with [WithDriver].
//
// # Buffer Ownership
//
// Exactly one side owns a canvas at any instant: the session owns the live
// buffer, the caller owns every off-screen buffer. [Matrix.Swap] transfers
// ownership both ways atomically with respect to the refresh loop. Canvas
// handles may move across goroutines, and read-only queries (Size, At) are
// safe from any goroutine, but only the current owner may draw.
//
// # Coordinate System
//
// Integer pixel coordinates, origin (0,0) at top-left, x increasing right,
// y increasing down. DrawText's y is the text baseline, not the top of the
// glyph box. Out-of-range writes are silently ignored: chained and rotated
// panel arrangements legitimately have sparse addressable regions.
package ledgrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
