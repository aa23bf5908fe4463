// Package app sequences boot and runs the two steady-state activities. Boot
// order matters: devices first (fatal on failure), then network, then time,
// then the sampling goroutine, and finally the render loop on the caller's
// goroutine.
package app

import (
	"context"
	"time"

	"envclock-go/bus"
	"envclock-go/envstate"
	"envclock-go/services/clocksync"
	"envclock-go/services/display"
	"envclock-go/services/i2creg"
	"envclock-go/services/sampler"
	"envclock-go/services/telemetry"
	"envclock-go/services/wifi"
	"envclock-go/types"
)

// Deps carries the wired services. Telemetry is optional; everything else is
// required.
type Deps struct {
	Registry  *i2creg.Registry
	Wifi      *wifi.Service
	Sync      *clocksync.Service
	Clock     *clocksync.Clock
	Conn      *bus.Connection
	Cfg       types.DeviceConfig
	Telemetry *telemetry.Service
}

// Run boots the device and blocks in the render loop until the context ends
// or the display fails. The error it returns is always fatal.
func Run(ctx context.Context, d Deps) error {
	if err := d.Registry.Init(d.Cfg.I2C, d.Cfg.Display); err != nil {
		return err
	}

	if err := d.Wifi.Join(ctx); err != nil {
		return err
	}

	// Best effort: an unsynced clock shows the epoch, the sensor rows still
	// work.
	if err := d.Sync.Sync(ctx); err != nil {
		println("Warn: app: clock unsynced:", err.Error())
	}

	rec := envstate.NewRecord()

	samplePeriod := time.Duration(d.Cfg.Sampler.PeriodMS) * time.Millisecond
	sampler.New(d.Registry.Sensor(), rec, samplePeriod, d.Conn).Start(ctx)

	if d.Telemetry != nil {
		d.Telemetry.Start(ctx)
	}

	disp := display.New(d.Registry.Display(), rec, d.Clock, display.Config{
		Width:      d.Cfg.Display.Width,
		GlyphWidth: d.Cfg.Display.GlyphWidth,
		RowPx:      d.Cfg.Display.RowPx,
		Period:     time.Duration(d.Cfg.Display.PeriodMS) * time.Millisecond,
	})
	return disp.Run(ctx)
}
