package ledgrid

// Driver is the interface for scan-out backends.
//
// A driver owns the background refresh: once Open returns, it continuously
// scans the most recently presented frame out to its sink (GPIO pins, a
// terminal, a browser) on its own schedule. The refresh cadence is not
// controlled by the caller.
//
// The frame format is packed RGB, 3 bytes per pixel, row-major,
// Geometry.Width()*Geometry.Height()*3 bytes total.
type Driver interface {
	// Open initializes the backend for the given geometry and starts the
	// background refresh. Returns an error if the geometry or the underlying
	// hardware is rejected.
	Open(g Geometry) error

	// Present atomically switches the scan-out source to frame. The refresh
	// loop observes either the whole previous frame or the whole new one,
	// never a mix. Present does not copy: the caller may keep writing into
	// frame and the writes become visible on subsequent refresh ticks (this
	// is how the live canvas works; tear-free updates go through Matrix.Swap).
	Present(frame []uint8)

	// Close stops the refresh and releases backend resources.
	// Close is idempotent.
	Close() error
}

// Geometry describes the panel arrangement and scan-out parameters handed to
// a driver at Open time. Values are validated by New before any driver sees
// them.
type Geometry struct {
	// Rows and Cols are the dimensions of a single panel.
	Rows, Cols int

	// ChainLength is the number of daisy-chained panels (extends width).
	ChainLength int

	// Parallel is the number of parallel chains (extends height).
	Parallel int

	// Brightness in percent, 0-100.
	Brightness int

	// PWMBits is the color depth used by PWM-capable drivers, 1-11.
	PWMBits int

	// RefreshRate is the target scan-out rate in Hz for software drivers.
	RefreshRate int

	// GPIOSlowdown stretches GPIO pulses for fast host CPUs. 0 disables.
	GPIOSlowdown int

	// HardwareMapping names the pinout wiring, e.g. "regular" or
	// "adafruit-hat-pwm".
	HardwareMapping string

	// HardwarePulsing enables hardware OE pulse generation where supported.
	HardwarePulsing bool

	// ShowRefreshRate makes the driver log its achieved refresh rate.
	ShowRefreshRate bool
}

// Width returns the total addressable width in pixels.
func (g Geometry) Width() int { return g.Cols * g.ChainLength }

// Height returns the total addressable height in pixels.
func (g Geometry) Height() int { return g.Rows * g.Parallel }

// FrameBytes returns the size of one packed RGB frame in bytes.
func (g Geometry) FrameBytes() int { return g.Width() * g.Height() * 3 }
