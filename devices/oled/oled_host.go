//go:build !tinygo

package oled

import (
	"fmt"
	"io"
	"sort"

	"tinygo.org/x/drivers"
)

// Device is the host stand-in for the panel: it keeps the strings drawn into
// the current frame and writes a text rendition of each flushed frame to Out.
type Device struct {
	w, h  int16
	out   io.Writer
	cells []cell
}

type cell struct {
	s    string
	x, y int16
}

func New(_ drivers.I2C, cfg Config) *Device {
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	return &Device{w: cfg.Width, h: cfg.Height, out: out}
}

func (d *Device) Size() (w, h int16) { return d.w, d.h }

func (d *Device) ClearBuffer() { d.cells = d.cells[:0] }

func (d *Device) DrawString(s string, x, y int16) {
	d.cells = append(d.cells, cell{s: s, x: x, y: y})
}

func (d *Device) Flush() error {
	sort.SliceStable(d.cells, func(i, j int) bool { return d.cells[i].y < d.cells[j].y })
	fmt.Fprintf(d.out, "---- frame %dx%d ----\n", d.w, d.h)
	for _, c := range d.cells {
		fmt.Fprintf(d.out, "  (%3d,%3d) %s\n", c.x, c.y, c.s)
	}
	return nil
}
