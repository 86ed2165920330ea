package gpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// pinout names the BCM GPIO numbers of one hardware mapping.
type pinout struct {
	r1, g1, b1    string // upper half color lines
	r2, g2, b2    string // lower half color lines
	a, b, c, d, e string // row address lines
	clk, lat, oe  string
}

// pinouts maps hardware mapping names to wirings. The names match the
// conventions of the common HUB75 adapter boards.
var pinouts = map[string]pinout{
	"regular": {
		r1: "GPIO11", g1: "GPIO27", b1: "GPIO7",
		r2: "GPIO8", g2: "GPIO9", b2: "GPIO10",
		a: "GPIO22", b: "GPIO23", c: "GPIO24", d: "GPIO25", e: "GPIO15",
		clk: "GPIO17", lat: "GPIO4", oe: "GPIO18",
	},
	"adafruit-hat": {
		r1: "GPIO5", g1: "GPIO13", b1: "GPIO6",
		r2: "GPIO12", g2: "GPIO16", b2: "GPIO23",
		a: "GPIO22", b: "GPIO26", c: "GPIO27", d: "GPIO20", e: "GPIO24",
		clk: "GPIO17", lat: "GPIO21", oe: "GPIO4",
	},
	// Same wiring as adafruit-hat with OE rerouted to the hardware PWM pin.
	"adafruit-hat-pwm": {
		r1: "GPIO5", g1: "GPIO13", b1: "GPIO6",
		r2: "GPIO12", g2: "GPIO16", b2: "GPIO23",
		a: "GPIO22", b: "GPIO26", c: "GPIO27", d: "GPIO20", e: "GPIO24",
		clk: "GPIO17", lat: "GPIO21", oe: "GPIO18",
	},
}

// pins holds the resolved GPIO lines of one panel connection.
type pins struct {
	r1, g1, b1   gpio.PinIO
	r2, g2, b2   gpio.PinIO
	addr         [5]gpio.PinIO
	clk, lat, oe gpio.PinIO
}

// resolvePins looks every line of the mapping up in the periph registry.
func resolvePins(mapping string) (*pins, error) {
	po, ok := pinouts[mapping]
	if !ok {
		return nil, fmt.Errorf("gpio: no pinout for hardware mapping %q", mapping)
	}

	byName := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio: pin %s not present", name)
		}
		return p, nil
	}

	var p pins
	var err error
	for _, assign := range []struct {
		dst  *gpio.PinIO
		name string
	}{
		{&p.r1, po.r1}, {&p.g1, po.g1}, {&p.b1, po.b1},
		{&p.r2, po.r2}, {&p.g2, po.g2}, {&p.b2, po.b2},
		{&p.addr[0], po.a}, {&p.addr[1], po.b}, {&p.addr[2], po.c},
		{&p.addr[3], po.d}, {&p.addr[4], po.e},
		{&p.clk, po.clk}, {&p.lat, po.lat}, {&p.oe, po.oe},
	} {
		if *assign.dst, err = byName(assign.name); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// all returns every line for bulk initialization.
func (p *pins) all() []gpio.PinIO {
	return []gpio.PinIO{
		p.r1, p.g1, p.b1, p.r2, p.g2, p.b2,
		p.addr[0], p.addr[1], p.addr[2], p.addr[3], p.addr[4],
		p.clk, p.lat, p.oe,
	}
}
