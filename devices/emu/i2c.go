// Package emu provides an in-memory I2C bus with just enough device
// behaviour for host builds and tests: the sensor address answers the BME280
// chip-id probe, the display address acks everything, and any other address
// NACKs. Addresses can be made to fail to emulate an absent device.
package emu

import (
	"errors"
	"sync"
)

const (
	DefaultSensorAddr  = 0x76
	DefaultDisplayAddr = 0x3C

	bme280ChipIDReg = 0xD0
	bme280ChipID    = 0x60
)

var ErrNack = errors.New("emu: no ack")

// I2C implements the tinygo drivers.I2C Tx shape.
type I2C struct {
	mu sync.Mutex

	SensorAddr  uint16
	DisplayAddr uint16

	// FailAddr makes transactions to one address NACK (0 disables).
	FailAddr uint16

	txCount map[uint16]int
}

func NewI2C() *I2C {
	return &I2C{
		SensorAddr:  DefaultSensorAddr,
		DisplayAddr: DefaultDisplayAddr,
		txCount:     map[uint16]int{},
	}
}

func (b *I2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailAddr != 0 && addr == b.FailAddr {
		return ErrNack
	}

	switch addr {
	case b.SensorAddr, b.DisplayAddr:
	default:
		return ErrNack
	}
	b.txCount[addr]++

	for i := range r {
		r[i] = 0
	}
	if addr == b.SensorAddr && len(w) > 0 && w[0] == bme280ChipIDReg && len(r) > 0 {
		r[0] = bme280ChipID
	}
	return nil
}

// TxCount reports how many transactions an address has seen.
func (b *I2C) TxCount(addr uint16) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txCount[addr]
}
