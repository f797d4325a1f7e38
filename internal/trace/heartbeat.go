package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits KindHeartbeat events at a fixed interval. In a trace, the
// last "file:" span begun before a run of heartbeats without a matching end
// is the file the front end is stuck on.
type Heartbeat struct {
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// StartHeartbeat starts the ticker goroutine. It returns nil when t is
// disabled or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{done: make(chan struct{}), finished: make(chan struct{})}
	go h.run(t, interval)
	return h
}

func (h *Heartbeat) run(t Tracer, interval time.Duration) {
	defer close(h.finished)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	gid := goroutineID()
	for n := 1; ; n++ {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		}
	}
}

// Stop halts the goroutine and waits for it. Safe to call repeatedly.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.done) })
	<-h.finished
}
