// Package term previews an LED panel inside a terminal using tcell.
//
// Every LED becomes two adjacent character cells with a colored background,
// which keeps pixels roughly square in common terminal fonts. The driver is
// display-only: it consumes no keyboard input, so the hosting program keeps
// handling its own signals.
package term

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ledgrid/ledgrid"
)

// maxRefresh caps the terminal redraw rate. Terminals fall far behind a
// panel-class refresh rate, so anything above this only wastes cycles.
const maxRefresh = 60

// Driver renders presented frames into a tcell screen.
type Driver struct {
	mu    sync.Mutex
	geom  ledgrid.Geometry
	front []uint8

	screen tcell.Screen
	stop   chan struct{}
	done   chan struct{}
	opened bool
	closed bool
}

// New creates a terminal driver. The terminal is untouched until a session
// opens the driver.
func New() *Driver {
	return &Driver{}
}

// Open takes over the terminal and starts the redraw loop.
func (d *Driver) Open(g ledgrid.Geometry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		return errors.New("term: driver is already open")
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("term: initializing screen: %w", err)
	}
	s.Clear()

	d.screen = s
	d.geom = g
	d.front = make([]uint8, g.FrameBytes())
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.opened = true

	go d.refreshLoop()

	ledgrid.Logger().Info("terminal driver opened",
		"width", g.Width(), "height", g.Height())
	return nil
}

// Present atomically switches the scan-out source to frame.
func (d *Driver) Present(frame []uint8) {
	d.mu.Lock()
	d.front = frame
	d.mu.Unlock()
}

// refreshLoop redraws the screen at the configured rate until Close.
func (d *Driver) refreshLoop() {
	defer close(d.done)

	rate := d.geom.RefreshRate
	if rate > maxRefresh {
		rate = maxRefresh
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	scratch := make([]uint8, d.geom.FrameBytes())
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			// Whole-frame snapshot under the lock, then draw unlocked.
			d.mu.Lock()
			copy(scratch, d.front)
			d.mu.Unlock()
			d.draw(scratch)
		}
	}
}

// draw paints one frame, two cells per pixel.
func (d *Driver) draw(frame []uint8) {
	w, h := d.geom.Width(), d.geom.Height()
	b := d.geom.Brightness
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			r := int32(frame[i+0]) * int32(b) / 100
			g := int32(frame[i+1]) * int32(b) / 100
			bl := int32(frame[i+2]) * int32(b) / 100
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(r, g, bl))
			d.screen.SetContent(x*2, y, ' ', nil, style)
			d.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}
	d.screen.Show()
}

// Close stops the redraw loop and restores the terminal.
// Close is idempotent.
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
	d.screen.Fini()
	return nil
}
