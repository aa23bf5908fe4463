package main

import (
	"context"
	"time"

	"envclock-go/app"
	"envclock-go/bus"
	"envclock-go/services/clocksync"
	"envclock-go/services/config"
	"envclock-go/services/i2creg"
	"envclock-go/services/wifi"
)

func main() {
	// Give the serial console time to attach before the first log lines.
	time.Sleep(2 * time.Second)
	initConsole()
	println("Info: main: boot, device", deviceName)

	cfg, err := config.Load(deviceName)
	if err != nil {
		fatal("config", err)
	}

	b := bus.NewBus(8)
	if err := config.Publish(b.NewConnection("config"), deviceName); err != nil {
		fatal("config", err)
	}

	clock := clocksync.NewClock()
	reg := i2creg.New(openI2C, b.NewConnection("i2creg"))
	reg.FrameOut = frameOut()

	deps := app.Deps{
		Registry:  reg,
		Wifi:      wifi.New(wifi.NewLink(), cfg.Wifi, b.NewConnection("wifi")),
		Sync:      clocksync.New(clock, clocksync.NewSource(cfg.TimeSync.Server), cfg.TimeSync, b.NewConnection("clock")),
		Clock:     clock,
		Conn:      b.NewConnection("sampler"),
		Cfg:       cfg,
		Telemetry: newTelemetry(cfg, clock, b),
	}

	if err := app.Run(context.Background(), deps); err != nil {
		fatal("run", err)
	}
}

// fatal halts the device. There is no recovery path: the panic leaves the
// failure on the serial console and, on device, drops into the runtime's
// blink loop.
func fatal(stage string, err error) {
	println("Error: main:", stage, "failed:", err.Error())
	panic(err)
}
