// Command hostdemo runs the sampling and render loops against a synthetic
// sensor and a console frame, so the steady-state behaviour can be watched
// without hardware.
package main

import (
	"context"
	"math"
	"os"
	"time"

	"envclock-go/devices/emu"
	"envclock-go/devices/oled"
	"envclock-go/envstate"
	"envclock-go/services/clocksync"
	"envclock-go/services/display"
	"envclock-go/services/sampler"
	"envclock-go/types"
)

// waveSensor synthesizes a slow sine over plausible indoor values.
type waveSensor struct {
	t0 time.Time
}

func (w *waveSensor) ReadOnce() (types.EnvReading, error) {
	phase := time.Since(w.t0).Seconds() / 10
	return types.EnvReading{
		Temperature: 21 + 2*math.Sin(phase),
		Pressure:    101325 + 200*math.Cos(phase),
		Humidity:    45 + 5*math.Sin(phase/2),
	}, nil
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rec := envstate.NewRecord()
	sampler.New(&waveSensor{t0: time.Now()}, rec, 2500*time.Millisecond, nil).Start(ctx)

	frame := oled.New(emu.NewI2C(), oled.Config{Width: 128, Height: 64, Out: os.Stdout})
	clock := clocksync.NewClock()
	if loc, err := time.LoadLocation("Europe/Bucharest"); err == nil {
		clock.SetLocation(loc)
	}

	svc := display.New(frame, rec, clock, display.Config{
		Width: 128, GlyphWidth: 8, RowPx: 8, Period: time.Second,
	})
	if err := svc.Run(ctx); err != nil {
		println("Error: hostdemo:", err.Error())
		os.Exit(1)
	}
}
