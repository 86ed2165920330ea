// Command leddemo displays text on an LED matrix panel or an emulated one.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgrid/ledgrid"
	"github.com/ledgrid/ledgrid/driver/gpio"
	"github.com/ledgrid/ledgrid/driver/term"
	"github.com/ledgrid/ledgrid/driver/web"
	"github.com/ledgrid/ledgrid/font"
	"github.com/ledgrid/ledgrid/text"
)

func main() {
	var (
		rows       = flag.Int("rows", 32, "rows of a single panel")
		cols       = flag.Int("cols", 64, "columns of a single panel")
		chain      = flag.Int("chain", 1, "number of chained panels")
		brightness = flag.Int("brightness", 100, "brightness in percent")
		mapping    = flag.String("mapping", "regular", "hardware mapping (gpio driver)")
		slowdown   = flag.Int("slowdown", 0, "GPIO slowdown factor (gpio driver)")
		driverName = flag.String("driver", "term", "driver: emulator, term, web or gpio")
		addr       = flag.String("addr", ":8080", "listen address (web driver)")
		fontPath   = flag.String("font", "", "path to a BDF font (required)")
		msg        = flag.String("text", "Mah boy! ", "text to display")
		wrap       = flag.Bool("wrap", false, "wrap text to the panel width instead of scrolling")
		kerning    = flag.Int("kerning", 0, "extra pixels between glyphs")
		leading    = flag.Int("leading", 0, "extra pixels between wrapped lines")
		verbose    = flag.Bool("v", false, "enable logging to stderr")
	)
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("a BDF font is required; pass -font path/to/font.bdf")
	}
	if *verbose {
		ledgrid.SetLogger(slog.Default())
	}

	var drv ledgrid.Driver
	switch *driverName {
	case "emulator":
		drv = ledgrid.NewEmulator()
	case "term":
		drv = term.New()
	case "web":
		drv = web.New(*addr)
	case "gpio":
		drv = gpio.New()
	default:
		log.Fatalf("unknown driver %q", *driverName)
	}

	m, err := ledgrid.New(
		ledgrid.WithRows(*rows),
		ledgrid.WithCols(*cols),
		ledgrid.WithChainLength(*chain),
		ledgrid.WithBrightness(*brightness),
		ledgrid.WithHardwareMapping(*mapping),
		ledgrid.WithGPIOSlowdown(*slowdown),
		ledgrid.WithDriver(drv),
	)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	defer func() {
		_ = m.Close()
	}()

	fnt, err := font.Load(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	defer func() {
		_ = fnt.Close()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	if *wrap {
		runWrapped(m, fnt, *msg, *kerning, *leading, sig)
	} else {
		runMarquee(m, fnt, *msg, *kerning, sig)
	}
}

// runMarquee scrolls the text across the panel until interrupted. Three
// copies one text-width apart make the scroll seamless.
func runMarquee(m *ledgrid.Matrix, fnt *font.Font, msg string, kerning int, sig <-chan os.Signal) {
	_, height := m.Size()
	textWidth := text.StringWidth(msg, fnt, kerning)
	if textWidth == 0 {
		return
	}
	baseline := height/2 + fnt.Baseline()/2

	opts := ledgrid.DefaultTextOptions().
		Color(ledgrid.RGB(0, 127, 0)).
		KerningOffset(kerning)

	canvas := m.OffscreenCanvas()
	ticker := time.NewTicker(30 * time.Millisecond)
	defer ticker.Stop()

	for x := 0; ; x = (x + 1) % textWidth {
		select {
		case <-sig:
			return
		case <-ticker.C:
		}

		canvas.Clear()
		for _, off := range []int{x - textWidth, x, x + textWidth} {
			if _, err := canvas.DrawText(fnt, msg, opts.Position(off, baseline)); err != nil {
				log.Fatalf("Failed to draw: %v", err)
			}
		}
		canvas = m.Swap(canvas)
	}
}

// runWrapped draws the text wrapped to the panel width and waits.
func runWrapped(m *ledgrid.Matrix, fnt *font.Font, msg string, kerning, leading int, sig <-chan os.Signal) {
	width, _ := m.Size()

	opts := ledgrid.DefaultTextOptions().
		Color(ledgrid.RGB(0, 127, 0)).
		Layout(ledgrid.Wrapped(width)).
		KerningOffset(kerning).
		Leading(leading).
		Position(0, fnt.Baseline())

	canvas := m.OffscreenCanvas()
	canvas.Clear()
	if _, err := canvas.DrawText(fnt, msg, opts); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}
	m.Swap(canvas)

	<-sig
}
