package display

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"envclock-go/envstate"
	"envclock-go/errcode"
	"envclock-go/services/sampler"
	"envclock-go/types"
)

type cell struct {
	s    string
	x, y int16
}

// fakeFrame records the last flushed frame.
type fakeFrame struct {
	mu      sync.Mutex
	pending []cell
	frame   []cell
	flushes int
	fail    bool
}

func (f *fakeFrame) ClearBuffer() {
	f.mu.Lock()
	f.pending = nil
	f.mu.Unlock()
}

func (f *fakeFrame) DrawString(s string, x, y int16) {
	f.mu.Lock()
	f.pending = append(f.pending, cell{s, x, y})
	f.mu.Unlock()
}

func (f *fakeFrame) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return &errcode.E{C: errcode.DisplayIO, Op: "fake.flush"}
	}
	f.frame = append([]cell(nil), f.pending...)
	f.flushes++
	return nil
}

func (f *fakeFrame) last() []cell {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cell(nil), f.frame...)
}

func (f *fakeFrame) flushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{time.Date(2026, 8, 25, 15, 4, 5, 0, time.UTC)}

func testCfg() Config {
	return Config{Width: 128, GlyphWidth: 8, RowPx: 8, Period: 5 * time.Millisecond}
}

func findCell(cells []cell, prefix string) (cell, bool) {
	for _, c := range cells {
		if strings.HasPrefix(c.s, prefix) {
			return c, true
		}
	}
	return cell{}, false
}

func TestRenderOnceFrameContent(t *testing.T) {
	rec := envstate.NewRecord()
	rec.Publish(types.EnvReading{Temperature: 21.5, Pressure: 101325, Humidity: 40.2})
	ff := &fakeFrame{}

	if err := New(ff, rec, testClock, testCfg()).RenderOnce(); err != nil {
		t.Fatalf("render: %v", err)
	}

	frame := ff.last()
	want := []struct {
		s string
		x int16
		y int16
	}{
		{"15:04:05", 32, 4},
		{"2026-08-25", 24, 16},
		{"Hum-40.2%", 28, 28},
		{"Temp-21.5C", 24, 38},
		{"Pres-1013.25hPa", 4, 48},
	}
	if len(frame) != len(want) {
		t.Fatalf("frame has %d cells, want %d: %+v", len(frame), len(want), frame)
	}
	for i, w := range want {
		got := frame[i]
		if got.s != w.s || got.x != w.x || got.y != w.y {
			t.Errorf("cell %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestRenderBeforeFirstSample(t *testing.T) {
	// The zero reading renders as real zeros, not a crash or a sentinel.
	ff := &fakeFrame{}
	if err := New(ff, envstate.NewRecord(), testClock, testCfg()).RenderOnce(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, ok := findCell(ff.last(), "Pres-0.00hPa"); !ok {
		t.Fatalf("expected zero pressure cell, frame: %+v", ff.last())
	}
}

func TestFlushFailureEndsRun(t *testing.T) {
	ff := &fakeFrame{fail: true}
	svc := New(ff, envstate.NewRecord(), testClock, testCfg())

	err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected flush failure to end the loop")
	}
	if errcode.Of(err) != errcode.DisplayIO {
		t.Fatalf("expected display_io, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ff := &fakeFrame{}
	svc := New(ff, envstate.NewRecord(), testClock, testCfg())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for ff.flushCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v on cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop on cancel")
	}
}

// The render loop must stay on its own cadence while the sampler writes on
// another, with the shared record as the only coupling point.
func TestIndependentCadences(t *testing.T) {
	rec := envstate.NewRecord()
	fs := &scriptedSensor{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sampler.New(fs, rec, 25*time.Millisecond, nil).Start(ctx)

	ff := &fakeFrame{}
	cfg := testCfg()
	cfg.Period = 10 * time.Millisecond
	svc := New(ff, rec, testClock, cfg)

	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}

	// Roughly 10 frames against roughly 4 samples.
	if n := ff.flushCount(); n < 5 {
		t.Fatalf("expected several frames, got %d", n)
	}
	if n := fs.count(); n >= ff.flushCount() {
		t.Fatalf("sampler (%d) should lag the renderer (%d)", n, ff.flushCount())
	}
	if _, ok := findCell(ff.last(), "Temp-"); !ok {
		t.Fatal("frame missing temperature row")
	}
}

type scriptedSensor struct {
	mu    sync.Mutex
	reads int
}

func (s *scriptedSensor) ReadOnce() (types.EnvReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return types.EnvReading{Temperature: 20 + float64(s.reads), Pressure: 101325, Humidity: 50}, nil
}

func (s *scriptedSensor) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
