// Package oled drives the SSD1306 frame buffer on the shared I2C bus.
// The rp2040 build renders through the ssd1306 driver and tinyfont; host
// builds substitute a text frame so the same code paths run in tests and in
// the host demo.
package oled

import (
	"io"

	"envclock-go/errcode"

	"tinygo.org/x/drivers"
)

// Default 7-bit address.
const Address = 0x3C

type Config struct {
	Width   int16
	Height  int16
	Address uint16

	// Out receives rendered frames on host builds; ignored on device.
	Out io.Writer
}

// Probe performs a one-byte read at addr to confirm a device acks there.
func Probe(bus drivers.I2C, addr uint16) error {
	var b [1]byte
	if err := bus.Tx(addr, nil, b[:]); err != nil {
		return &errcode.E{C: errcode.ProbeFailed, Op: "oled.probe", Err: err}
	}
	return nil
}
