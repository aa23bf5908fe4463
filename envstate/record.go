// Package envstate holds the most recent environmental sample shared between
// the sampling and presentation activities. The producer overwrites the whole
// record in one critical section; the consumer copies the whole record out in
// one critical section. Nothing else is ever done under the lock, so readers
// can never observe fields from two different sampling cycles.
package envstate

import (
	"sync"

	"envclock-go/types"
	"envclock-go/x/timex"
)

// Record is the single mutable structure shared by the two activities.
// The zero value is unusable; construct with NewRecord.
type Record struct {
	mu    sync.Mutex
	val   types.EnvReading
	tsMs  int64
	valid bool
}

func NewRecord() *Record { return &Record{} }

// Publish replaces the record with v. The lock is held only for the copy.
func (r *Record) Publish(v types.EnvReading) {
	now := timex.NowMs()
	r.mu.Lock()
	r.val = v
	r.tsMs = now
	r.valid = true
	r.mu.Unlock()
}

// Snapshot copies the record out. ok is false until the first Publish;
// the returned value is then the zero reading.
func (r *Record) Snapshot() (v types.EnvReading, ok bool) {
	r.mu.Lock()
	v = r.val
	ok = r.valid
	r.mu.Unlock()
	return v, ok
}

// LastUpdateMs returns the Unix-millisecond timestamp of the last Publish,
// or 0 if nothing was published yet.
func (r *Record) LastUpdateMs() int64 {
	r.mu.Lock()
	ts := r.tsMs
	r.mu.Unlock()
	return ts
}
