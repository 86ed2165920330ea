package ledgrid

import (
	"errors"
	"sync"
	"time"
)

// Emulator is the default scan-out driver: an in-memory panel. It keeps the
// full Driver contract - a background refresh goroutine runs at the
// configured rate, and Present switches the scan-out source atomically - so
// session code behaves exactly as it would on hardware. Tests and headless
// tools read the displayed frame back with [Emulator.Shown].
type Emulator struct {
	mu    sync.Mutex
	geom  Geometry
	front []uint8 // current scan-out source, app-owned memory

	stop   chan struct{}
	done   chan struct{}
	opened bool
	closed bool

	frames uint64 // refresh ticks since Open, for rate reporting
}

// NewEmulator creates an emulator driver. It is inert until a session opens
// it.
func NewEmulator() *Emulator {
	return &Emulator{}
}

// Open starts the background refresh. A driver instance serves one session.
func (e *Emulator) Open(g Geometry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opened {
		return errors.New("ledgrid: emulator is already open")
	}
	e.geom = g
	e.front = make([]uint8, g.FrameBytes())
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	e.opened = true
	e.closed = false

	go e.refreshLoop()
	return nil
}

// Present atomically switches the scan-out source to frame.
func (e *Emulator) Present(frame []uint8) {
	e.mu.Lock()
	e.front = frame
	e.mu.Unlock()
}

// Shown returns a copy of the frame as the scan-out currently observes it,
// with brightness applied. The copy is taken whole under the same lock the
// refresh holds, so it is never a mix of two presented frames.
func (e *Emulator) Shown() []uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]uint8, len(e.front))
	if e.geom.Brightness >= 100 {
		copy(out, e.front)
		return out
	}
	b := e.geom.Brightness
	for i, v := range e.front {
		out[i] = uint8(int(v) * b / 100)
	}
	return out
}

// Frames returns the number of refresh ticks since Open.
func (e *Emulator) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// refreshLoop ticks at the configured refresh rate until Close. Each tick
// stands in for one hardware scan-out pass.
func (e *Emulator) refreshLoop() {
	defer close(e.done)

	interval := time.Second / time.Duration(e.geom.RefreshRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastReport := time.Now()
	var lastFrames uint64

	for {
		select {
		case <-e.stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			e.frames++
			frames := e.frames
			e.mu.Unlock()

			if e.geom.ShowRefreshRate {
				if now := time.Now(); now.Sub(lastReport) >= time.Second {
					hz := float64(frames-lastFrames) / now.Sub(lastReport).Seconds()
					Logger().Debug("emulator refresh rate", "hz", hz)
					lastReport = now
					lastFrames = frames
				}
			}
		}
	}
}

// Close stops the refresh goroutine. Close is idempotent.
func (e *Emulator) Close() error {
	e.mu.Lock()
	if !e.opened || e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	close(e.stop)
	<-e.done
	return nil
}
