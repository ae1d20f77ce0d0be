package trace

import (
	"fmt"
	"io"
	"sync"
)

// RingTracer remembers the most recent events so a failed scan can show
// what led up to the failure.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	next    int
	stored  int
	dropped uint64
	level   Level
}

// NewRingTracer keeps up to capacity events; capacity <= 0 means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores ev, overwriting the oldest event once the ring is full.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	if t.stored == len(t.buf) {
		t.dropped++
	} else {
		t.stored++
	}
	t.buf[t.next] = *ev
	t.buf[t.next].Seq = NextSeq()
	t.next = (t.next + 1) % len(t.buf)
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.stored)
	start := (t.next - t.stored + len(t.buf)) % len(t.buf)
	for i := range t.stored {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// Dump writes the stored events, preceded by a note when older ones were lost.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if n := t.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
