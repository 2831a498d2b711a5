package lineterm

import (
	"sync"
	"time"

	"github.com/hnimtadd/lineterm/terminal"
)

const (
	// DefaultTimeout is the FixedTimeout quiet window.
	DefaultTimeout = 100 * time.Millisecond

	// DefaultVolatileTimeout is the StatefulTimeout window for lines
	// under active rewrite (carriage returns, cursor motion, erasure).
	DefaultVolatileTimeout = 50 * time.Millisecond

	// DefaultStableTimeout is the StatefulTimeout window for plain
	// append-only lines.
	DefaultStableTimeout = 200 * time.Millisecond
)

// lineTimer is the single-instance timer shared by the timeout
// strategies. Arming cancels the previous timer; a generation counter
// keeps a timer that already fired but lost the race to a cancel from
// invoking the emit callback.
type lineTimer struct {
	mu    sync.Mutex
	emit  func()
	timer *time.Timer
	gen   uint64
}

func (t *lineTimer) SetEmitCallback(cb func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.emit = cb
}

// arm schedules a flush after d, replacing any pending timer.
func (t *lineTimer) arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, func() {
		t.fire(gen)
	})
}

// cancel stops any pending timer and invalidates in-flight fires.
func (t *lineTimer) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *lineTimer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.emit == nil {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	emit := t.emit
	// The callback runs outside the lock: it re-enters the transformer,
	// which may call back into OnWrite/cancel.
	t.mu.Unlock()
	emit()
}

func (t *lineTimer) dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.emit = nil
}

// FixedTimeout flushes on every newline and otherwise arms a single
// quiet-window timer whenever the line has content. Late-arriving
// chunks keep pushing the window out; the line is emitted once the
// producer goes quiet.
type FixedTimeout struct {
	lineTimer
	timeout time.Duration
}

// NewFixedTimeout builds the strategy with the given quiet window;
// zero or negative means DefaultTimeout.
func NewFixedTimeout(timeout time.Duration) *FixedTimeout {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FixedTimeout{timeout: timeout}
}

func (s *FixedTimeout) OnWrite(term *terminal.Terminal, state terminal.WriteState) bool {
	s.cancel()
	if state.HadNewline {
		return true
	}
	if term.HasContent() {
		s.arm(s.timeout)
	}
	return false
}

func (s *FixedTimeout) Flush() bool {
	s.cancel()
	return true
}

func (s *FixedTimeout) Dispose() {
	s.dispose()
}

// StatefulTimeout is FixedTimeout with an adaptive window: a line
// being rewritten in place (progress bars redrawing via CR, cursor
// motion or erasure) gets a short window so transient states are not
// held long, while a plain line gets a longer window that coalesces
// late arrivals from the producer.
type StatefulTimeout struct {
	lineTimer
	volatileTimeout time.Duration
	stableTimeout   time.Duration
}

// NewStatefulTimeout builds the strategy with the given windows; zero
// or negative values fall back to the defaults.
func NewStatefulTimeout(volatileTimeout, stableTimeout time.Duration) *StatefulTimeout {
	if volatileTimeout <= 0 {
		volatileTimeout = DefaultVolatileTimeout
	}
	if stableTimeout <= 0 {
		stableTimeout = DefaultStableTimeout
	}
	return &StatefulTimeout{
		volatileTimeout: volatileTimeout,
		stableTimeout:   stableTimeout,
	}
}

func (s *StatefulTimeout) OnWrite(term *terminal.Terminal, state terminal.WriteState) bool {
	s.cancel()
	if state.HadNewline {
		return true
	}
	if term.HasContent() {
		if volatile(state) {
			s.arm(s.volatileTimeout)
		} else {
			s.arm(s.stableTimeout)
		}
	}
	return false
}

func (s *StatefulTimeout) Flush() bool {
	s.cancel()
	return true
}

func (s *StatefulTimeout) Dispose() {
	s.dispose()
}

// volatile reports whether the write rewrote the line in place rather
// than only appending to it.
func volatile(state terminal.WriteState) bool {
	return state.HadCarriageReturn || state.HadCursorMovement || state.HadErasure
}
