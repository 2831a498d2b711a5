package lineterm

import (
	"errors"
	"io"
	"sync"

	"github.com/hnimtadd/lineterm/logger"
	"github.com/hnimtadd/lineterm/terminal"
)

// MaxPending bounds the polling queue. On overflow the oldest line is
// dropped and ErrBacklogOverflow is surfaced; the stream keeps going.
const MaxPending = 1000

// ErrBacklogOverflow reports that the polling queue exceeded
// MaxPending and dropped its oldest line.
var ErrBacklogOverflow = errors.New("lineterm: pending line backlog overflow")

type Options struct {
	// Strategy decides flush timing. Defaults to a StatefulTimeout
	// with the default windows.
	Strategy Strategy

	// Output, when set and no push callback is registered, receives
	// every flushed line with a trailing newline.
	Output io.Writer

	Logger logger.Logger
}

// Transformer drives a streaming terminal and an emission strategy
// over chunked input, multiplexing reconstructed lines to whichever
// output surfaces are active: an always-invoked observer list, a push
// callback, a downstream writer, and a polling queue.
//
// Chunks arrive through Write/WriteString. Strategy timers fire on
// their own goroutine, so the transformer serializes writes, timer
// flushes and queue access behind one mutex. Callbacks (observers,
// push callback, error callback) are invoked with that mutex held and
// must not call back into the transformer's write path.
type Transformer struct {
	mu       sync.Mutex
	term     *terminal.Terminal
	strategy Strategy

	out       io.Writer
	lineFunc  func(line string)
	observers []func(line string)
	errFunc   func(err error)

	pending []string
	err     error
	closed  bool
	broken  bool // downstream write failed; tear down after the current chunk

	logger logger.Logger
}

func New(opts Options) *Transformer {
	if opts.Strategy == nil {
		opts.Strategy = NewStatefulTimeout(0, 0)
	}
	if opts.Logger == nil {
		opts.Logger = logger.DefaultLogger
	}
	x := &Transformer{
		term:     terminal.New(terminal.Options{Logger: opts.Logger}),
		strategy: opts.Strategy,
		out:      opts.Output,
		logger:   opts.Logger,
	}
	// Flush inline on every newline so multiple newlines in one chunk
	// produce multiple lines, in input order, before Write returns.
	x.term.SetLineReadyCallback(x.flush)
	x.strategy.SetEmitCallback(x.emitFromTimer)
	return x
}

// SetLineCallback registers the push callback. While set, flushed
// lines bypass the downstream writer and the polling queue entirely.
func (x *Transformer) SetLineCallback(cb func(line string)) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.lineFunc = cb
}

// OnLine registers an observer invoked with every flushed line,
// regardless of which other surfaces are active.
func (x *Transformer) OnLine(cb func(line string)) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.observers = append(x.observers, cb)
}

// OnError registers a callback for host-visible errors (backlog
// overflow, downstream write failures).
func (x *Transformer) OnError(cb func(err error)) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.errFunc = cb
}

// Write feeds a chunk of bytes, decoded as UTF-8, into the terminal.
// Implements io.Writer so a pty or pipe can be copied straight in.
func (x *Transformer) Write(p []byte) (int, error) {
	if err := x.WriteString(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString feeds one chunk. The terminal processes every token in
// order; newline flushes are delivered before WriteString returns, and
// the strategy then decides whether the remaining partial line flushes
// now, later, or not yet.
func (x *Transformer) WriteString(chunk string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return io.ErrClosedPipe
	}
	state := x.term.Write(chunk)
	if x.strategy.OnWrite(x.term, state) && x.term.HasContent() {
		x.flush()
	}
	if x.broken {
		x.teardown()
	}
	return nil
}

// Close ends the stream: the strategy may request one final flush of
// remaining content, then both strategy and terminal are disposed.
// Returns the last surfaced error, if any.
func (x *Transformer) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return x.err
	}
	if x.strategy.Flush() && x.term.HasContent() {
		x.flush()
	}
	x.teardown()
	return x.err
}

// Err returns the last surfaced error, if any.
func (x *Transformer) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

// PendingLines returns a snapshot of the polling queue.
func (x *Transformer) PendingLines() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]string(nil), x.pending...)
}

// ConsumePendingLines takes and clears the polling queue.
func (x *Transformer) ConsumePendingLines() []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	lines := x.pending
	x.pending = nil
	return lines
}

// ClearPendingLines discards the polling queue.
func (x *Transformer) ClearPendingLines() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.pending = nil
}

// emitFromTimer is the strategy's asynchronous flush path.
func (x *Transformer) emitFromTimer() {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return
	}
	if x.term.HasContent() {
		x.flush()
	}
	if x.broken {
		x.teardown()
	}
}

// flush renders the current line, resets the terminal for the next
// one, and delivers the rendered string. Runs with the mutex held;
// also runs reentrantly from inside the terminal's Write via the
// line-ready callback.
func (x *Transformer) flush() {
	line := x.term.RenderLine()
	x.term.Reset()
	x.deliver(line)
}

func (x *Transformer) deliver(line string) {
	for _, observe := range x.observers {
		observe(line)
	}
	if x.lineFunc != nil {
		x.lineFunc(line)
		return
	}
	if x.out != nil {
		if _, err := io.WriteString(x.out, line+"\n"); err != nil {
			x.fail(err)
			x.broken = true
		}
	}
	if len(x.pending) >= MaxPending {
		x.pending = x.pending[1:]
		x.fail(ErrBacklogOverflow)
	}
	x.pending = append(x.pending, line)
}

// fail records err and surfaces it to the host.
func (x *Transformer) fail(err error) {
	x.err = err
	x.logger.Warn("lineterm transform error", "err", err)
	if x.errFunc != nil {
		x.errFunc(err)
	}
}

// teardown disposes the strategy and terminal. Runs with the mutex
// held; idempotent.
func (x *Transformer) teardown() {
	if x.closed {
		return
	}
	x.closed = true
	x.strategy.Dispose()
	x.term.Dispose()
}
