package sampler

import (
	"context"
	"sync"
	"testing"
	"time"

	"envclock-go/bus"
	"envclock-go/envstate"
	"envclock-go/errcode"
	"envclock-go/types"
)

// fakeSensor returns scripted readings; a nil entry means a failed cycle.
type fakeSensor struct {
	mu    sync.Mutex
	reads int
	fail  bool
	next  types.EnvReading
}

func (f *fakeSensor) ReadOnce() (types.EnvReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.fail {
		return types.EnvReading{}, &errcode.E{C: errcode.SensorIO, Op: "fake.read"}
	}
	return f.next, nil
}

func (f *fakeSensor) set(v types.EnvReading, fail bool) {
	f.mu.Lock()
	f.next, f.fail = v, fail
	f.mu.Unlock()
}

func (f *fakeSensor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestPublishesIntoRecord(t *testing.T) {
	rec := envstate.NewRecord()
	fs := &fakeSensor{next: types.EnvReading{Temperature: 21.5, Pressure: 101325, Humidity: 40}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(fs, rec, 5*time.Millisecond, nil).Start(ctx)

	waitFor(t, func() bool {
		v, ok := rec.Snapshot()
		return ok && v.Temperature == 21.5
	})
}

func TestFailedCycleRetainsStaleRecord(t *testing.T) {
	rec := envstate.NewRecord()
	fs := &fakeSensor{next: types.EnvReading{Temperature: 20}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(fs, rec, 5*time.Millisecond, nil).Start(ctx)

	waitFor(t, func() bool { _, ok := rec.Snapshot(); return ok })
	fs.set(types.EnvReading{}, true)

	// Let several failing cycles pass; the last good sample must survive.
	start := fs.count()
	waitFor(t, func() bool { return fs.count() > start+3 })
	v, ok := rec.Snapshot()
	if !ok || v.Temperature != 20 {
		t.Fatalf("stale record not retained: %+v ok=%v", v, ok)
	}
}

func TestDegradedStateOnFailure(t *testing.T) {
	mb := bus.NewBus(8)
	sub := mb.NewConnection("test").Subscribe(bus.T("sampler", "state"))

	rec := envstate.NewRecord()
	fs := &fakeSensor{fail: true}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(fs, rec, 5*time.Millisecond, mb.NewConnection("sampler")).Start(ctx)

	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-sub.Channel():
			st := msg.Payload.(types.ServiceState)
			if st.Level == types.LevelDegraded && st.Error != "" {
				return
			}
		case <-deadline:
			t.Fatal("no degraded state seen")
		}
	}
}

func TestReadingPublishedOnBus(t *testing.T) {
	mb := bus.NewBus(8)
	sub := mb.NewConnection("test").Subscribe(bus.T("env", "reading"))

	rec := envstate.NewRecord()
	fs := &fakeSensor{next: types.EnvReading{Humidity: 55}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(fs, rec, 5*time.Millisecond, mb.NewConnection("sampler")).Start(ctx)

	select {
	case msg := <-sub.Channel():
		v, ok := msg.Payload.(types.EnvReading)
		if !ok || v.Humidity != 55 {
			t.Fatalf("unexpected reading payload: %#v", msg.Payload)
		}
		if !msg.Retained {
			t.Fatal("readings should be retained for late subscribers")
		}
	case <-time.After(time.Second):
		t.Fatal("no reading on bus")
	}
}

func TestRuntimePeriodChange(t *testing.T) {
	mb := bus.NewBus(8)
	rec := envstate.NewRecord()
	fs := &fakeSensor{next: types.EnvReading{Temperature: 1}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := New(fs, rec, time.Hour, mb.NewConnection("sampler"))
	svc.Start(ctx)

	// First cycle runs immediately, then the hour-long sleep begins.
	waitFor(t, func() bool { return fs.count() >= 1 })

	pub := mb.NewConnection("config")
	pub.Publish(pub.NewMessage(bus.T("config", "sampler"), []byte(`{"period_ms":5}`), false))

	waitFor(t, func() bool { return fs.count() >= 3 })
}
