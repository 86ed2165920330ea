package ledgrid

import (
	"fmt"
)

// Matrix is a display session: it owns the driver connection and the buffer
// currently being scanned out, and performs the double-buffer swap protocol.
//
// A Matrix is created with [New] and must be released with [Close]. All
// methods are intended for the single goroutine (at a time) that owns the
// session; the only coordination with the background refresh happens inside
// the driver's Present.
type Matrix struct {
	geom   Geometry
	drv    Driver
	live   *Canvas
	closed bool
}

// New creates a display session. The configuration is validated before the
// driver is opened: an invalid field aborts construction with a
// [*ConfigError] naming the violated constraint, and no partial session
// exists afterwards.
//
// Without [WithDriver], the session scans out to an in-memory [Emulator].
func New(opts ...Option) (*Matrix, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	// Use provided driver or fall back to the emulator
	drv := options.driver
	if drv == nil {
		drv = NewEmulator()
	}

	if err := drv.Open(options.geom); err != nil {
		return nil, fmt.Errorf("ledgrid: opening driver: %w", err)
	}

	m := &Matrix{
		geom: options.geom,
		drv:  drv,
		live: newCanvas(options.geom.Width(), options.geom.Height()),
	}
	m.drv.Present(m.live.pix)

	Logger().Info("session opened",
		"width", m.geom.Width(),
		"height", m.geom.Height(),
		"driver", fmt.Sprintf("%T", drv))
	return m, nil
}

// Size returns the total addressable width and height in pixels.
func (m *Matrix) Size() (width, height int) {
	return m.geom.Width(), m.geom.Height()
}

// Geometry returns the validated session configuration.
func (m *Matrix) Geometry() Geometry {
	return m.geom
}

// LiveCanvas returns the canvas currently being scanned out. Drawing into it
// is visible on the next refresh tick without a swap, but the refresh may
// observe a half-drawn frame (tearing). For tear-free animation use
// [Matrix.OffscreenCanvas] and [Matrix.Swap].
func (m *Matrix) LiveCanvas() *Canvas {
	return m.live
}

// OffscreenCanvas allocates a new buffer that is not displayed. The caller
// owns it exclusively until it is handed to [Matrix.Swap].
func (m *Matrix) OffscreenCanvas() *Canvas {
	return newCanvas(m.geom.Width(), m.geom.Height())
}

// Swap hands c to the session to become the new live buffer and returns the
// buffer that was live before the call, now off-screen and owned by the
// caller. The exchange is atomic with respect to the driver refresh: the
// scan-out observes either the whole old frame or the whole new one.
//
// After Swap(c) returns, the caller must not draw into c until a later Swap
// returns it again. Swapping nil, the live canvas itself, or swapping on a
// closed session returns c unchanged.
func (m *Matrix) Swap(c *Canvas) *Canvas {
	if c == nil || c == m.live || m.closed {
		return c
	}
	m.drv.Present(c.pix)
	prev := m.live
	m.live = c
	return prev
}

// Close releases the driver session. After Close, canvases obtained from the
// session must no longer be drawn through it.
// Close is idempotent - multiple calls are safe.
// Implements io.Closer.
func (m *Matrix) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	err := m.drv.Close()
	if err != nil {
		Logger().Warn("driver close failed", "error", err)
		return fmt.Errorf("ledgrid: closing driver: %w", err)
	}
	Logger().Info("session closed")
	return nil
}
