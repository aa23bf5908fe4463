// Package display runs the consumer activity: once per period it reads the
// clock and the shared record, formats both, and pushes one frame to the
// panel. The record lock is held only for the copy-out; formatting and
// drawing happen outside it.
package display

import (
	"context"
	"fmt"
	"time"

	"envclock-go/envstate"
	"envclock-go/x/timex"
)

const defaultPeriod = time.Second

// Frame is the drawing surface (the OLED on device, a text frame on host).
type Frame interface {
	ClearBuffer()
	DrawString(s string, x, y int16)
	Flush() error
}

// Clock yields localized wall-clock time.
type Clock interface {
	Now() time.Time
}

type Config struct {
	Width      int16
	GlyphWidth int16
	RowPx      int16
	Period     time.Duration
}

type Service struct {
	frame Frame
	rec   *envstate.Record
	clock Clock
	cfg   Config
}

func New(frame Frame, rec *envstate.Record, clock Clock, cfg Config) *Service {
	if cfg.Period <= 0 {
		cfg.Period = defaultPeriod
	}
	if cfg.GlyphWidth <= 0 {
		cfg.GlyphWidth = 8
	}
	if cfg.RowPx <= 0 {
		cfg.RowPx = 8
	}
	return &Service{frame: frame, rec: rec, clock: clock, cfg: cfg}
}

// Run executes the render loop on the calling goroutine. It returns nil on
// context cancellation and an error on a frame flush failure, which the
// orchestrator treats as fatal: the product is a display, so losing the
// display is unrecoverable.
func (s *Service) Run(ctx context.Context) error {
	timer := time.NewTimer(s.cfg.Period)
	defer timer.Stop()

	for {
		if err := s.RenderOnce(); err != nil {
			return err
		}
		timex.ResetTimer(timer, s.cfg.Period)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// RenderOnce draws one complete frame and flushes it.
func (s *Service) RenderOnce() error {
	now := s.clock.Now()
	timeStr := now.Format("15:04:05")
	dateStr := now.Format("2006-01-02")

	// Lock held only for the copy; the zero reading renders until the first
	// sample lands.
	rec, _ := s.rec.Snapshot()
	tempStr := fmt.Sprintf("Temp-%.1fC", rec.Temperature)
	presStr := fmt.Sprintf("Pres-%.2fhPa", rec.Pressure/100)
	humStr := fmt.Sprintf("Hum-%.1f%%", rec.Humidity)

	w, g, rp := s.cfg.Width, s.cfg.GlyphWidth, s.cfg.RowPx

	s.frame.ClearBuffer()
	s.frame.DrawString(timeStr, CenterX(w, len(timeStr), g), rowY(rp, 1, -4))
	s.frame.DrawString(dateStr, CenterX(w, len(dateStr), g), rowY(rp, 2, 0))
	// Row 3 is left blank as a spacer between the clock block and the
	// sensor block.
	s.frame.DrawString(humStr, CenterX(w, len(humStr), g), rowY(rp, 4, -4))
	s.frame.DrawString(tempStr, CenterX(w, len(tempStr), g), rowY(rp, 5, -2))
	s.frame.DrawString(presStr, CenterX(w, len(presStr), g), rowY(rp, 6, 0))
	return s.frame.Flush()
}
