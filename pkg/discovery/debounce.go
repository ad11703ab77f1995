package discovery

import (
	"sync"
	"time"
)

// DefaultDebounce is the coalescing window for free text query edits.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single callback. Every
// trigger restarts the window, only the last callback runs.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
