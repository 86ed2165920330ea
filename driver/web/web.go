// Package web previews an LED panel over HTTP.
//
// The driver serves three endpoints:
//   - "/" is a minimal page that polls the PNG snapshot,
//   - "/frame.png" is the frame currently scanned out, as PNG,
//   - "/ws" streams LZ4-compressed raw RGB frames to native clients
//     over WebSocket.
//
// The WebSocket stream opens with one JSON text message describing the
// geometry ({"width":W,"height":H}); every following binary message is one
// LZ4-compressed frame of W*H*3 bytes.
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pierrec/lz4"

	"github.com/ledgrid/ledgrid"
)

// streamRate is how many frames per second the WebSocket stream pushes.
// Preview clients do not need the panel's full refresh rate.
const streamRate = 30

// Driver serves presented frames to browsers and native preview clients.
type Driver struct {
	mu    sync.Mutex
	geom  ledgrid.Geometry
	front []uint8

	addr string
	ln   net.Listener
	srv  *http.Server
	hub  *hub

	stop   chan struct{}
	done   chan struct{}
	opened bool
	closed bool
}

// New creates a web driver listening on addr (e.g. ":8080"; ":0" picks a
// free port). Nothing is served until a session opens the driver.
func New(addr string) *Driver {
	return &Driver{addr: addr, hub: newHub()}
}

// Addr returns the address the driver actually listens on, valid after Open.
func (d *Driver) Addr() string {
	if d.ln == nil {
		return d.addr
	}
	return d.ln.Addr().String()
}

// Open starts the HTTP server and the frame stream.
func (d *Driver) Open(g ledgrid.Geometry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		return errors.New("web: driver is already open")
	}

	ln, err := net.Listen("tcp", d.addr)
	if err != nil {
		return fmt.Errorf("web: listening on %s: %w", d.addr, err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/", d.handleIndex)
	r.HandleFunc("/frame.png", d.handleFramePNG)
	r.HandleFunc("/ws", d.handleWS)

	d.geom = g
	d.front = make([]uint8, g.FrameBytes())
	d.ln = ln
	d.srv = &http.Server{
		Handler:           handlers.RecoveryHandler()(r),
		ReadHeaderTimeout: 5 * time.Second,
	}
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.opened = true

	go func() {
		if err := d.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ledgrid.Logger().Warn("web driver server stopped", "error", err)
		}
	}()
	go d.streamLoop()

	ledgrid.Logger().Info("web driver listening",
		"addr", ln.Addr().String(),
		"width", g.Width(), "height", g.Height())
	return nil
}

// Present atomically switches the scan-out source to frame.
func (d *Driver) Present(frame []uint8) {
	d.mu.Lock()
	d.front = frame
	d.mu.Unlock()
}

// snapshot copies the current frame whole, with brightness applied.
func (d *Driver) snapshot(dst []uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.geom.Brightness
	if b >= 100 {
		copy(dst, d.front)
		return
	}
	for i, v := range d.front {
		dst[i] = uint8(int(v) * b / 100)
	}
}

// streamLoop pushes compressed frames to connected WebSocket clients.
func (d *Driver) streamLoop() {
	defer close(d.done)

	ticker := time.NewTicker(time.Second / streamRate)
	defer ticker.Stop()

	scratch := make([]uint8, d.geom.FrameBytes())
	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			if d.hub.empty() {
				continue
			}
			d.snapshot(scratch)
			payload, err := compressFrame(scratch)
			if err != nil {
				ledgrid.Logger().Warn("frame compression failed", "error", err)
				continue
			}
			d.hub.broadcast(payload)
		}
	}
}

// compressFrame compresses one raw RGB frame with LZ4.
func compressFrame(frame []uint8) ([]byte, error) {
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)

	if _, err := writer.Write(frame); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Driver) handleFramePNG(w http.ResponseWriter, _ *http.Request) {
	frame := make([]uint8, d.geom.FrameBytes())
	d.snapshot(frame)

	width, height := d.geom.Width(), d.geom.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for p := 0; p < width*height; p++ {
		img.Pix[p*4+0] = frame[p*3+0]
		img.Pix[p*4+1] = frame[p*3+1]
		img.Pix[p*4+2] = frame[p*3+2]
		img.Pix[p*4+3] = 255
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		ledgrid.Logger().Warn("png encode failed", "error", err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	// Preview streams are not credentialed; accept any origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (d *Driver) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ledgrid.Logger().Warn("websocket upgrade failed", "error", err)
		return
	}

	header, _ := json.Marshal(map[string]int{
		"width":  d.geom.Width(),
		"height": d.geom.Height(),
	})
	if err := conn.WriteMessage(websocket.TextMessage, header); err != nil {
		_ = conn.Close()
		return
	}

	d.hub.add(conn)
	ledgrid.Logger().Info("preview client connected", "remote", conn.RemoteAddr().String())
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>ledgrid</title></head>
<body style="background:#111;margin:0;display:flex;justify-content:center;align-items:center;height:100vh">
<img id="panel" style="image-rendering:pixelated;width:80vw" src="/frame.png">
<script>
const img = document.getElementById('panel');
setInterval(() => { img.src = '/frame.png?t=' + Date.now(); }, 100);
</script>
</body>
</html>
`

func (d *Driver) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

// Close stops the stream, disconnects clients, and shuts the server down.
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
	d.hub.closeAll()
	return d.srv.Close()
}
