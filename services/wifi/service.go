// Package wifi brings the station link up before any network-dependent
// stage runs. Join blocks until association succeeds; the device has no
// useful offline mode beyond the sensor rows, so it retries forever.
package wifi

import (
	"context"
	"time"

	"envclock-go/bus"
	"envclock-go/types"
	"envclock-go/x/timex"
)

const defaultBackoff = 5 * time.Second

var topicState = bus.T("wifi", "state")

// Link is one association attempt against the configured AP.
type Link interface {
	Connect(ssid, pass string) error
}

type Service struct {
	link    Link
	cfg     types.WifiConfig
	backoff time.Duration
	conn    *bus.Connection // may be nil
}

func New(link Link, cfg types.WifiConfig, conn *bus.Connection) *Service {
	backoff := defaultBackoff
	if cfg.RetryBackoffMS > 0 {
		backoff = time.Duration(cfg.RetryBackoffMS) * time.Millisecond
	}
	return &Service{link: link, cfg: cfg, backoff: backoff, conn: conn}
}

// Join blocks until the link is up or the context ends. Every failed
// attempt is logged and followed by a fixed backoff; there is no attempt
// cap.
func (s *Service) Join(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := s.link.Connect(s.cfg.Ssid, s.cfg.Pass)
		if err == nil {
			println("Info: wifi: connected to", s.cfg.Ssid)
			s.publishState(types.LevelUp, "connected", nil)
			return nil
		}
		println("Warn: wifi: join attempt", attempt, "failed:", err.Error())
		s.publishState(types.LevelDegraded, "retrying", err)

		select {
		case <-ctx.Done():
			s.publishState(types.LevelStopped, "context_cancelled", nil)
			return ctx.Err()
		case <-time.After(s.backoff):
		}
	}
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
