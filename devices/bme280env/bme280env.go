// Package bme280env wraps the BME280 driver as a one-shot environmental
// sensor: each ReadOnce performs one conversion and returns calibrated
// readings in physical units (°C, Pa, %RH). The driver reports fixed-point
// milli-°C, milli-Pa and centi-%RH; the conversion happens here so the rest
// of the system never sees driver units.
package bme280env

import (
	"envclock-go/errcode"
	"envclock-go/types"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/bme280"
)

// Default 7-bit address (SDO low).
const Address = 0x76

// Config controls sensor bring-up. All fields are optional.
type Config struct {
	// Address defaults to 0x76 if zero.
	Address uint16
}

// Sensor owns the driver handle for the BME280 on the shared bus.
type Sensor struct {
	dev bme280.Device
}

// New creates the sensor object. The I2C bus must already be configured;
// this function does not touch the device.
func New(bus drivers.I2C) *Sensor {
	return &Sensor{dev: bme280.New(bus)}
}

// Configure applies the measurement configuration and verifies the device
// answers at its address. Returns a device-attach error when the chip id
// probe fails.
func (s *Sensor) Configure(cfgs ...Config) error {
	addr := uint16(Address)
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		addr = cfgs[0].Address
	}
	s.dev.Address = addr
	s.dev.Configure()
	if !s.dev.Connected() {
		return &errcode.E{C: errcode.DeviceAttachFailed, Op: "bme280.configure", Msg: "chip id probe failed"}
	}
	return nil
}

// ReadOnce performs one conversion and returns the calibrated triple.
// A failed cycle returns a sensor_io error and no partial data.
func (s *Sensor) ReadOnce() (types.EnvReading, error) {
	t, err := s.dev.ReadTemperature()
	if err != nil {
		return types.EnvReading{}, &errcode.E{C: errcode.SensorIO, Op: "bme280.temperature", Err: err}
	}
	p, err := s.dev.ReadPressure()
	if err != nil {
		return types.EnvReading{}, &errcode.E{C: errcode.SensorIO, Op: "bme280.pressure", Err: err}
	}
	h, err := s.dev.ReadHumidity()
	if err != nil {
		return types.EnvReading{}, &errcode.E{C: errcode.SensorIO, Op: "bme280.humidity", Err: err}
	}
	return types.EnvReading{
		Temperature: float64(t) / 1000, // milli-°C
		Pressure:    float64(p) / 1000, // milli-Pa
		Humidity:    float64(h) / 100,  // centi-%RH
	}, nil
}
