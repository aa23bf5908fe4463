// Package i2creg owns the shared I2C bus and the two device handles bound to
// it. Initialization is idempotent: the first call brings the bus up and
// binds both devices; later calls observe the existing bus and return
// immediately. The handles are immutable afterwards and may be read
// concurrently without further locking.
package i2creg

import (
	"io"
	"sync"

	"envclock-go/bus"
	"envclock-go/devices/bme280env"
	"envclock-go/devices/oled"
	"envclock-go/errcode"
	"envclock-go/types"
	"envclock-go/x/timex"

	"tinygo.org/x/drivers"
)

// Opener brings up the platform I2C bus for the configured pins and speed.
// Injected so host builds and tests can supply an emulated bus.
type Opener func(cfg types.I2CConfig) (drivers.I2C, error)

type Registry struct {
	mu   sync.Mutex
	open Opener
	conn *bus.Connection // may be nil

	// FrameOut receives the host rendition of each frame. Ignored on
	// device. Set before Init.
	FrameOut io.Writer

	i2c     drivers.I2C
	sensor  *bme280env.Sensor
	display *oled.Device
}

func New(open Opener, conn *bus.Connection) *Registry {
	return &Registry{open: open, conn: conn}
}

// Init creates the bus and binds both devices. Safe to call multiple times;
// only the first call does work. Any returned error is fatal to the caller:
// a missing display makes the product non-functional, so the display probe
// failure propagates rather than degrading.
func (g *Registry) Init(cfg types.I2CConfig, disp types.DisplayConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.i2c != nil {
		return nil
	}

	i2c, err := g.open(cfg)
	if err != nil {
		return &errcode.E{C: errcode.BusInitFailed, Op: "i2creg.open", Err: err}
	}

	sensor := bme280env.New(i2c)
	if err := sensor.Configure(bme280env.Config{Address: cfg.SensorAddr}); err != nil {
		return err
	}

	if err := oled.Probe(i2c, cfg.DisplayAddr); err != nil {
		return err
	}
	println("Info: i2creg: display detected at", cfg.DisplayAddr)

	display := oled.New(i2c, oled.Config{
		Width:   disp.Width,
		Height:  disp.Height,
		Address: cfg.DisplayAddr,
		Out:     g.FrameOut,
	})
	if err := splash(display, disp); err != nil {
		return err
	}

	g.i2c = i2c
	g.sensor = sensor
	g.display = display
	g.publishState()
	return nil
}

// splash shows a placeholder frame until the first real render.
func splash(d *oled.Device, disp types.DisplayConfig) error {
	const msg = "Getting Data"
	x := disp.Width/2 - int16(len(msg))*disp.GlyphWidth/2
	y := disp.RowPx * 2
	d.ClearBuffer()
	d.DrawString(msg, x, y)
	return d.Flush()
}

func (g *Registry) publishState() {
	if g.conn == nil {
		return
	}
	g.conn.Publish(g.conn.NewMessage(bus.T("i2c", "state"),
		types.ServiceState{Level: types.LevelReady, Status: "devices_bound", TS: timex.NowMs()}, true))
}

// Accessors are defined only after a successful Init; calling them earlier is
// a caller bug and yields nil handles.

func (g *Registry) Bus() drivers.I2C {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.i2c
}

func (g *Registry) Sensor() *bme280env.Sensor {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sensor
}

func (g *Registry) Display() *oled.Device {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.display
}
