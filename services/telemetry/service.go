// Package telemetry forwards readings from the bus to an external broker.
// It is strictly best effort: a dead broker never degrades sampling or the
// display.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"envclock-go/bus"
	"envclock-go/types"
	"envclock-go/x/timex"
)

var (
	topicReading = bus.T("env", "reading")
	topicState   = bus.T("telemetry", "state")
)

// Publisher is the broker-side half of the bridge.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

type Service struct {
	pub       Publisher
	cfg       types.MQTTConfig
	stationID string
	clock     interface{ Now() time.Time }
	conn      *bus.Connection
}

func New(pub Publisher, cfg types.MQTTConfig, clock interface{ Now() time.Time }, conn *bus.Connection) *Service {
	return &Service{pub: pub, cfg: cfg, stationID: cfg.ClientID, clock: clock, conn: conn}
}

// Start launches the forwarding loop and returns immediately.
func (s *Service) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	sub := s.conn.Subscribe(topicReading)
	defer s.conn.Unsubscribe(sub)
	defer s.pub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-sub.Channel():
			v, ok := msg.Payload.(types.EnvReading)
			if !ok {
				continue
			}
			s.forward(v)
		}
	}
}

func (s *Service) forward(v types.EnvReading) {
	t := types.Telemetry{
		StationID:   s.stationID,
		Timestamp:   s.clock.Now(),
		Temperature: v.Temperature,
		Humidity:    v.Humidity,
		Pressure:    v.Pressure / 100,
	}
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.pub.Publish(s.cfg.Topic, b); err != nil {
		println("Warn: telemetry: publish failed:", err.Error())
		s.publishState(types.LevelDegraded, "publish_failed", err)
		return
	}
	s.publishState(types.LevelReady, "forwarding", nil)
}

func (s *Service) publishState(level, status string, err error) {
	st := types.ServiceState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(topicState, st, true))
}
