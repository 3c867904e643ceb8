package search

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one invocation. Each
// Trigger cancels the in-flight timer before arming a new one, so only the
// last keystroke inside the window causes a recomputation and overlapping
// recomputes are impossible.
type Debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	window time.Duration
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = time.Millisecond
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the window, cancelling any pending run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
