//go:build tinygo

package main

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"envclock-go/bus"
	"envclock-go/errcode"
	"envclock-go/services/clocksync"
	"envclock-go/services/telemetry"
	"envclock-go/types"
)

const deviceName = "envclock-pico"

func initConsole() {
	uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
}

func openI2C(cfg types.I2CConfig) (drivers.I2C, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		SDA:       machine.Pin(cfg.SDAPin),
		SCL:       machine.Pin(cfg.SCLPin),
		Frequency: uint32(cfg.FreqHz),
	})
	if err != nil {
		return nil, errcode.Wrap(errcode.BusInitFailed, "machine.i2c0", err)
	}
	return i2c, nil
}

func frameOut() io.Writer { return nil }

// No broker bridge on device; paho needs the full net stack.
func newTelemetry(types.DeviceConfig, *clocksync.Clock, *bus.Bus) *telemetry.Service {
	return nil
}
