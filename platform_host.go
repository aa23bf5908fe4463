//go:build !tinygo

package main

import (
	"io"
	"os"

	"tinygo.org/x/drivers"

	"envclock-go/bus"
	"envclock-go/devices/emu"
	"envclock-go/services/clocksync"
	"envclock-go/services/telemetry"
	"envclock-go/types"
)

const deviceName = "envclock-host"

func initConsole() {}

func openI2C(types.I2CConfig) (drivers.I2C, error) {
	return emu.NewI2C(), nil
}

func frameOut() io.Writer { return os.Stdout }

func newTelemetry(cfg types.DeviceConfig, clock *clocksync.Clock, b *bus.Bus) *telemetry.Service {
	if cfg.MQTT.Broker == "" {
		return nil
	}
	pub, err := telemetry.Dial(cfg.MQTT.Broker, cfg.MQTT.ClientID)
	if err != nil {
		println("Warn: main: broker unreachable:", err.Error())
		return nil
	}
	return telemetry.New(pub, cfg.MQTT, clock, b.NewConnection("telemetry"))
}
