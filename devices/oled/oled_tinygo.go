//go:build tinygo

package oled

import (
	"image/color"

	"envclock-go/errcode"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	font  = &proggy.TinySZ8pt7b
)

// Device wraps the ssd1306 frame buffer.
type Device struct {
	dev  ssd1306.Device
	w, h int16
}

// New initializes the panel and clears it. The bus must be configured and the
// device probed beforehand.
func New(bus drivers.I2C, cfg Config) *Device {
	d := &Device{dev: ssd1306.NewI2C(bus), w: cfg.Width, h: cfg.Height}
	d.dev.Configure(ssd1306.Config{
		Address:  cfg.Address,
		Width:    cfg.Width,
		Height:   cfg.Height,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	d.dev.ClearDisplay()
	return d
}

func (d *Device) Size() (w, h int16) { return d.w, d.h }

func (d *Device) ClearBuffer() { d.dev.ClearBuffer() }

// DrawString renders s with its baseline anchored at the given cursor.
func (d *Device) DrawString(s string, x, y int16) {
	tinyfont.WriteLine(&d.dev, font, x, y, s, white)
}

// Flush pushes the frame buffer to the panel.
func (d *Device) Flush() error {
	if err := d.dev.Display(); err != nil {
		return &errcode.E{C: errcode.DisplayIO, Op: "ssd1306.display", Err: err}
	}
	return nil
}
