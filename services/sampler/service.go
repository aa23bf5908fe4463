// Package sampler runs the producer activity: one forced sensor conversion
// per period, published whole into the shared record. A failed cycle skips
// publication and keeps the previous record; showing a sentinel would put
// fake physical values on the display.
package sampler

import (
	"context"
	"encoding/json"
	"time"

	"envclock-go/bus"
	"envclock-go/envstate"
	"envclock-go/types"
	"envclock-go/x/timex"
)

const defaultPeriod = 2500 * time.Millisecond

var (
	topicReading = bus.T("env", "reading")
	topicState   = bus.T("sampler", "state")
	topicConfig  = bus.T("config", "sampler")
)

// Sensor performs one forced conversion per call.
type Sensor interface {
	ReadOnce() (types.EnvReading, error)
}

type Service struct {
	sensor Sensor
	rec    *envstate.Record
	period time.Duration
	conn   *bus.Connection // may be nil
}

func New(sensor Sensor, rec *envstate.Record, period time.Duration, conn *bus.Connection) *Service {
	if period <= 0 {
		period = defaultPeriod
	}
	return &Service{sensor: sensor, rec: rec, period: period, conn: conn}
}

// Start launches the sampling loop and returns immediately.
func (s *Service) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	var cfgCh <-chan *bus.Message
	if s.conn != nil {
		cfgSub := s.conn.Subscribe(topicConfig)
		defer s.conn.Unsubscribe(cfgSub)
		cfgCh = cfgSub.Channel()
	}

	timer := time.NewTimer(s.period)
	defer timer.Stop()

	for {
		s.sample()

		// Fixed-delay sleep: the cycle length is the nominal period plus
		// whatever the conversion took. Not drift-corrected.
		timex.ResetTimer(timer, s.period)
	wait:
		for {
			select {
			case <-ctx.Done():
				s.publishState(types.LevelStopped, "context_cancelled", nil)
				return
			case msg := <-cfgCh:
				if s.applyConfig(msg.Payload) {
					timex.ResetTimer(timer, s.period)
				}
			case <-timer.C:
				break wait
			}
		}
	}
}

func (s *Service) sample() {
	v, err := s.sensor.ReadOnce()
	if err != nil {
		// Stale record retained; a single failed cycle is never fatal.
		println("Warn: sampler: conversion failed:", err.Error())
		s.publishState(types.LevelDegraded, "conversion_failed", err)
		return
	}
	s.rec.Publish(v)
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicReading, v, true))
	}
	s.publishState(types.LevelReady, "sampling", nil)
}

func (s *Service) applyConfig(payload any) bool {
	var cfg types.SamplerConfig
	if err := decodeJSON(payload, &cfg); err != nil {
		println("Warn: sampler: bad config:", err.Error())
		return false
	}
	if cfg.PeriodMS <= 0 {
		return false
	}
	s.period = time.Duration(cfg.PeriodMS) * time.Millisecond
	println("Info: sampler: period set to", cfg.PeriodMS, "ms")
	return true
}

func (s *Service) publishState(level, status string, err error) {
	if s.conn == nil {
		return
	}
	st := types.ServiceState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(topicState, st, true))
}

func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
