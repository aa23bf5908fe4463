package clocksync

import (
	"context"
	"time"

	"envclock-go/bus"
	"envclock-go/errcode"
	"envclock-go/types"
	"envclock-go/x/timex"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultFallbackDelay = 500 * time.Millisecond
	fallbackPolls        = 10
)

var topicState = bus.T("clock", "state")

// Source answers one offset query against the configured time server.
type Source interface {
	Offset(ctx context.Context) (time.Duration, error)
}

type Service struct {
	clock         *Clock
	source        Source
	cfg           types.TimeSyncConfig
	conn          *bus.Connection // may be nil
	fallbackDelay time.Duration
}

func New(clock *Clock, source Source, cfg types.TimeSyncConfig, conn *bus.Connection) *Service {
	return &Service{
		clock:         clock,
		source:        source,
		cfg:           cfg,
		conn:          conn,
		fallbackDelay: defaultFallbackDelay,
	}
}

// Sync localizes the clock and tries one bounded offset query. When the
// query fails it falls back to polling the clock for a plausible year, so a
// platform that syncs time underneath us still gets picked up. A clock left
// implausible is reported, not fatal.
func (s *Service) Sync(ctx context.Context) error {
	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		println("Warn: clock: unknown timezone", s.cfg.Timezone, "- using UTC")
		loc = time.UTC
	}
	s.clock.SetLocation(loc)

	timeout := defaultTimeout
	if s.cfg.TimeoutMS > 0 {
		timeout = time.Duration(s.cfg.TimeoutMS) * time.Millisecond
	}
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	offset, err := s.source.Offset(qctx)
	if err == nil {
		s.clock.setOffset(offset)
		println("Info: clock: synced, offset", offset.Milliseconds(), "ms")
		s.publishState(types.LevelReady, "synced", nil)
		return nil
	}
	println("Warn: clock: query failed:", err.Error())

	for i := 0; i < fallbackPolls; i++ {
		if timex.YearPlausible(s.clock.Now()) {
			println("Info: clock: system time plausible, accepting")
			s.publishState(types.LevelReady, "system_time", nil)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.fallbackDelay):
		}
	}

	err = errcode.Wrap(errcode.SyncTimeout, "clocksync.sync", err)
	s.publishState(types.LevelDegraded, "unsynced", err)
	return err
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
