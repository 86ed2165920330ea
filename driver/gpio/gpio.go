// Package gpio drives HUB75 LED matrix panels by bit-banging Raspberry Pi
// GPIO lines through periph.io.
//
// HUB75 panels have no frame memory: the driver must continuously clock
// pixel data out, one pair of rows at a time, or the panel goes dark. Color
// depth comes from binary-coded modulation: each refresh pass walks the
// bit planes of the 8-bit channels and holds the output enable low for a
// time proportional to the plane's significance.
//
// This is a software scan-out; refresh quality depends on the host CPU and
// scheduler. Use the GPIO slowdown option on fast hosts whose pulses
// outrun the panel's shift registers.
package gpio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"github.com/ledgrid/ledgrid"
)

// baseOnTime is the output-enable hold time of the least significant bit
// plane. Higher planes hold 2^plane times longer.
const baseOnTime = 2 * time.Microsecond

// Driver scans frames out to a chain of HUB75 panels.
type Driver struct {
	mu    sync.Mutex
	geom  ledgrid.Geometry
	front []uint8

	pins *pins

	stop   chan struct{}
	done   chan struct{}
	opened bool
	closed bool

	frames uint64
}

// New creates a GPIO driver. Hardware is untouched until a session opens it.
func New() *Driver {
	return &Driver{}
}

// Open initializes periph, resolves the pinout for the configured hardware
// mapping, and starts the scan-out loop.
func (d *Driver) Open(g ledgrid.Geometry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		return errors.New("gpio: driver is already open")
	}
	if g.Rows%2 != 0 {
		return fmt.Errorf("gpio: %d rows: HUB75 scans row pairs, rows must be even", g.Rows)
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("gpio: initializing periph host: %w", err)
	}
	p, err := resolvePins(g.HardwareMapping)
	if err != nil {
		return err
	}
	for _, pin := range p.all() {
		if err := pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("gpio: initializing %s: %w", pin.Name(), err)
		}
	}
	// Blank the panel until the first frame is clocked out.
	if err := p.oe.Out(gpio.High); err != nil {
		return fmt.Errorf("gpio: blanking panel: %w", err)
	}

	d.geom = g
	d.front = make([]uint8, g.FrameBytes())
	d.pins = p
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.opened = true

	go d.refreshLoop()

	ledgrid.Logger().Info("gpio driver opened",
		"mapping", g.HardwareMapping,
		"width", g.Width(), "height", g.Height(),
		"pwm_bits", g.PWMBits)
	return nil
}

// Present atomically switches the scan-out source to frame.
func (d *Driver) Present(frame []uint8) {
	d.mu.Lock()
	d.front = frame
	d.mu.Unlock()
}

// refreshLoop scans frames out until Close. Each pass snapshots the frame
// whole, so a swapped-in buffer is never mixed with its predecessor.
func (d *Driver) refreshLoop() {
	defer close(d.done)

	scratch := make([]uint8, d.geom.FrameBytes())
	lastReport := time.Now()
	var lastFrames uint64

	for {
		select {
		case <-d.stop:
			// Leave the panel blanked.
			_ = d.pins.oe.Out(gpio.High)
			return
		default:
		}

		d.mu.Lock()
		copy(scratch, d.front)
		d.mu.Unlock()

		d.scanFrame(scratch)
		d.frames++

		if d.geom.ShowRefreshRate {
			if now := time.Now(); now.Sub(lastReport) >= time.Second {
				hz := float64(d.frames-lastFrames) / now.Sub(lastReport).Seconds()
				ledgrid.Logger().Debug("gpio refresh rate", "hz", hz)
				lastReport = now
				lastFrames = d.frames
			}
		}
	}
}

// scanFrame clocks one whole frame out: for every row pair and bit plane,
// shift the pixel bits in, latch, and enable the output for the plane's
// weighted duration.
func (d *Driver) scanFrame(frame []uint8) {
	g := d.geom
	width := g.Width()
	half := g.Height() / 2
	planes := colorPlanes(g.PWMBits)
	// Brightness shortens every plane's on-time proportionally.
	onScale := time.Duration(g.Brightness)

	for row := 0; row < half; row++ {
		for plane := 0; plane < planes; plane++ {
			bit := planeBit(planes, plane)

			for x := 0; x < width; x++ {
				top := (row*width + x) * 3
				bot := ((row+half)*width + x) * 3
				d.setColorPins(frame, top, bot, bit)
				d.pulseClock()
			}

			d.selectRow(row)
			d.pulse(d.pins.lat)

			on := baseOnTime * (1 << uint(plane)) * onScale / 100
			_ = d.pins.oe.Out(gpio.Low)
			time.Sleep(on)
			_ = d.pins.oe.Out(gpio.High)
		}
	}
}

// colorPlanes returns the number of bit planes actually scanned out. The
// channels are 8-bit, so no more than 8 planes can inspect a real bit no
// matter how high PWMBits is configured.
func colorPlanes(pwmBits int) int {
	if pwmBits > 8 {
		return 8
	}
	return pwmBits
}

// planeBit maps a scan plane to the channel bit it inspects: the top
// `planes` bits of the 8-bit value, least significant plane first.
func planeBit(planes, plane int) uint {
	return uint(8 - planes + plane)
}

// setColorPins sets the six color lines from the top and bottom pixel of
// the current column for one bit plane.
func (d *Driver) setColorPins(frame []uint8, top, bot int, bit uint) {
	_ = d.pins.r1.Out(level(frame[top+0], bit))
	_ = d.pins.g1.Out(level(frame[top+1], bit))
	_ = d.pins.b1.Out(level(frame[top+2], bit))
	_ = d.pins.r2.Out(level(frame[bot+0], bit))
	_ = d.pins.g2.Out(level(frame[bot+1], bit))
	_ = d.pins.b2.Out(level(frame[bot+2], bit))
}

// selectRow sets the address lines to the given row pair.
func (d *Driver) selectRow(row int) {
	for i, pin := range d.pins.addr {
		_ = pin.Out(gpio.Level(row&(1<<uint(i)) != 0))
	}
}

// pulseClock raises and lowers the clock line, stretched by the slowdown
// factor for hosts whose GPIO outruns the panel's shift registers.
func (d *Driver) pulseClock() {
	for i := 0; i <= d.geom.GPIOSlowdown; i++ {
		_ = d.pins.clk.Out(gpio.High)
	}
	for i := 0; i <= d.geom.GPIOSlowdown; i++ {
		_ = d.pins.clk.Out(gpio.Low)
	}
}

// pulse strobes a line high then low.
func (d *Driver) pulse(pin gpio.PinIO) {
	_ = pin.Out(gpio.High)
	_ = pin.Out(gpio.Low)
}

func level(v uint8, bit uint) gpio.Level {
	return gpio.Level(v&(1<<bit) != 0)
}

// Close stops the scan-out and blanks the panel. Close is idempotent.
func (d *Driver) Close() error {
	d.mu.Lock()
	if !d.opened || d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.stop)
	<-d.done
	return nil
}
