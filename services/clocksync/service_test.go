package clocksync

import (
	"context"
	"errors"
	"testing"
	"time"

	"envclock-go/errcode"
	"envclock-go/types"
)

type fakeSource struct {
	offset time.Duration
	err    error
}

func (f fakeSource) Offset(ctx context.Context) (time.Duration, error) {
	return f.offset, f.err
}

func testCfg() types.TimeSyncConfig {
	return types.TimeSyncConfig{Server: "pool.ntp.org", TimeoutMS: 50, Timezone: "Europe/Bucharest"}
}

func TestSyncAppliesOffset(t *testing.T) {
	clock := NewClock()
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	clock.nowFn = func() time.Time { return base }

	svc := New(clock, fakeSource{offset: 90 * time.Second}, testCfg(), nil)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := clock.Now(); !got.Equal(base.Add(90 * time.Second)) {
		t.Fatalf("offset not applied: %v", got)
	}
}

func TestSyncLocalizes(t *testing.T) {
	if _, err := time.LoadLocation("Europe/Bucharest"); err != nil {
		t.Skip("no tzdata on this host")
	}
	clock := NewClock()
	svc := New(clock, fakeSource{}, testCfg(), nil)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if name, _ := clock.Now().Zone(); name == "UTC" {
		t.Fatal("clock not localized")
	}
}

func TestSyncUnknownTimezoneFallsBackToUTC(t *testing.T) {
	clock := NewClock()
	cfg := testCfg()
	cfg.Timezone = "Nowhere/Atlantis"
	svc := New(clock, fakeSource{}, cfg, nil)
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if name, _ := clock.Now().Zone(); name != "UTC" {
		t.Fatalf("expected UTC fallback, got %s", name)
	}
}

func TestSyncFallsBackToPlausibleSystemTime(t *testing.T) {
	// Query fails but the system clock already carries a believable year.
	clock := NewClock()
	svc := New(clock, fakeSource{err: errors.New("refused")}, testCfg(), nil)
	svc.fallbackDelay = time.Millisecond
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("expected plausible-year acceptance, got %v", err)
	}
}

func TestSyncTimesOutOnImplausibleClock(t *testing.T) {
	clock := NewClock()
	clock.nowFn = func() time.Time { return time.Date(1970, 1, 1, 0, 0, 10, 0, time.UTC) }

	svc := New(clock, fakeSource{err: errors.New("refused")}, testCfg(), nil)
	svc.fallbackDelay = time.Millisecond

	start := time.Now()
	err := svc.Sync(context.Background())
	if errcode.Of(err) != errcode.SyncTimeout {
		t.Fatalf("expected sync_timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("fallback polls skipped: %v", elapsed)
	}
}

func TestClockPicksUpLateSystemSync(t *testing.T) {
	// The clock jumps to a valid year mid-fallback, as it does when the
	// platform syncs time underneath us.
	clock := NewClock()
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	jumpAt := time.Now().Add(5 * time.Millisecond)
	clock.nowFn = func() time.Time {
		if time.Now().After(jumpAt) {
			return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		}
		return epoch
	}

	svc := New(clock, fakeSource{err: errors.New("refused")}, testCfg(), nil)
	svc.fallbackDelay = 2 * time.Millisecond
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("expected late sync acceptance, got %v", err)
	}
}
