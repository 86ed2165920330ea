package ledgrid

// Option configures a Matrix during creation.
// Use functional options to customize session behavior.
//
// Example:
//
//	// Default 64x32 emulated panel
//	m, err := ledgrid.New()
//
//	// Two chained 32x32 panels on real hardware
//	m, err := ledgrid.New(
//	    ledgrid.WithCols(32),
//	    ledgrid.WithChainLength(2),
//	    ledgrid.WithHardwareMapping("adafruit-hat-pwm"),
//	    ledgrid.WithDriver(gpioDriver),
//	)
type Option func(*matrixOptions)

// matrixOptions holds the configuration assembled by New.
type matrixOptions struct {
	geom   Geometry
	driver Driver
}

// defaultOptions returns the default session options: a single 64x32 panel
// at full brightness, scanned out by the in-memory emulator.
func defaultOptions() matrixOptions {
	return matrixOptions{
		geom: Geometry{
			Rows:            32,
			Cols:            64,
			ChainLength:     1,
			Parallel:        1,
			Brightness:      100,
			PWMBits:         11,
			RefreshRate:     120,
			GPIOSlowdown:    0,
			HardwareMapping: "regular",
		},
		driver: nil, // Will be set to an Emulator if nil
	}
}

// hardwareMappings is the set of known pinout names.
var hardwareMappings = map[string]bool{
	"regular":          true,
	"regular-pi1":      true,
	"adafruit-hat":     true,
	"adafruit-hat-pwm": true,
	"classic":          true,
	"classic-pi1":      true,
}

// WithRows sets the number of rows of a single panel. Default 32.
func WithRows(rows int) Option {
	return func(o *matrixOptions) { o.geom.Rows = rows }
}

// WithCols sets the number of columns of a single panel. Default 64.
func WithCols(cols int) Option {
	return func(o *matrixOptions) { o.geom.Cols = cols }
}

// WithChainLength sets how many panels are daisy-chained. Default 1.
func WithChainLength(n int) Option {
	return func(o *matrixOptions) { o.geom.ChainLength = n }
}

// WithParallel sets how many chains run in parallel. Default 1.
func WithParallel(n int) Option {
	return func(o *matrixOptions) { o.geom.Parallel = n }
}

// WithBrightness sets the panel brightness in percent, 0-100. Default 100.
func WithBrightness(percent int) Option {
	return func(o *matrixOptions) { o.geom.Brightness = percent }
}

// WithPWMBits sets the PWM color depth, 1-11. Default 11.
func WithPWMBits(bits int) Option {
	return func(o *matrixOptions) { o.geom.PWMBits = bits }
}

// WithRefreshRate sets the target scan-out rate in Hz for software drivers.
// Default 120.
func WithRefreshRate(hz int) Option {
	return func(o *matrixOptions) { o.geom.RefreshRate = hz }
}

// WithGPIOSlowdown stretches GPIO pulses for fast host CPUs. Default 0.
func WithGPIOSlowdown(factor int) Option {
	return func(o *matrixOptions) { o.geom.GPIOSlowdown = factor }
}

// WithHardwareMapping names the pinout wiring. Default "regular".
func WithHardwareMapping(name string) Option {
	return func(o *matrixOptions) { o.geom.HardwareMapping = name }
}

// WithHardwarePulsing enables hardware OE pulse generation. Default off.
func WithHardwarePulsing(on bool) Option {
	return func(o *matrixOptions) { o.geom.HardwarePulsing = on }
}

// WithShowRefreshRate makes the driver log its achieved refresh rate.
// Default off.
func WithShowRefreshRate(on bool) Option {
	return func(o *matrixOptions) { o.geom.ShowRefreshRate = on }
}

// WithDriver sets a custom scan-out driver for the session.
// Use this for dependency injection of hardware or preview drivers.
//
// Example:
//
//	drv, err := term.New()
//	m, err := ledgrid.New(ledgrid.WithDriver(drv))
func WithDriver(d Driver) Option {
	return func(o *matrixOptions) { o.driver = d }
}

// validate checks every geometry field and reports the first violated
// constraint. Each failure names the offending option so misconfiguration
// is diagnosable without consulting driver internals.
func (o *matrixOptions) validate() error {
	g := o.geom
	if g.Rows <= 0 {
		return &ConfigError{Field: "rows", Value: g.Rows, Reason: "must be positive"}
	}
	if g.Cols <= 0 {
		return &ConfigError{Field: "cols", Value: g.Cols, Reason: "must be positive"}
	}
	if g.ChainLength < 1 {
		return &ConfigError{Field: "chain length", Value: g.ChainLength, Reason: "must be at least 1"}
	}
	if g.Parallel < 1 {
		return &ConfigError{Field: "parallel", Value: g.Parallel, Reason: "must be at least 1"}
	}
	if g.Brightness < 0 || g.Brightness > 100 {
		return &ConfigError{Field: "brightness", Value: g.Brightness, Reason: "must be in range 0-100"}
	}
	if g.PWMBits < 1 || g.PWMBits > 11 {
		return &ConfigError{Field: "pwm bits", Value: g.PWMBits, Reason: "must be in range 1-11"}
	}
	if g.RefreshRate <= 0 {
		return &ConfigError{Field: "refresh rate", Value: g.RefreshRate, Reason: "must be positive"}
	}
	if g.GPIOSlowdown < 0 {
		return &ConfigError{Field: "gpio slowdown", Value: g.GPIOSlowdown, Reason: "must not be negative"}
	}
	if !hardwareMappings[g.HardwareMapping] {
		return &ConfigError{Field: "hardware mapping", Value: g.HardwareMapping, Reason: "unknown mapping name"}
	}
	return nil
}
