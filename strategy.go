package lineterm

import "github.com/hnimtadd/lineterm/terminal"

// Strategy decides when the current line is flushed downstream. The
// transformer consults it after every write; a strategy may instead
// (or additionally) schedule an asynchronous flush through the emit
// callback it was given.
//
// Contract: OnWrite cancels any pending timer before arming a new one,
// a newline always cancels the timer, and a strategy causes at most
// one emission per logical line: either the synchronous newline path
// or the timer path, never both.
type Strategy interface {
	// SetEmitCallback stores the callback the strategy may invoke
	// later to request an asynchronous flush.
	SetEmitCallback(cb func())

	// OnWrite observes the outcome of one terminal write. Returning
	// true asks the caller to flush immediately, synchronously after
	// the write.
	OnWrite(term *terminal.Terminal, state terminal.WriteState) bool

	// Flush is called at stream end. It cancels any pending timer and
	// returns true to request one final flush of remaining content.
	Flush() bool

	// Dispose cancels timers and drops the callback.
	Dispose()
}

// Immediate never schedules anything: lines are emitted solely through
// the terminal's line-ready callback on each newline. Used when the
// downstream wants output strictly at newline boundaries.
type Immediate struct{}

func NewImmediate() *Immediate {
	return &Immediate{}
}

func (*Immediate) SetEmitCallback(func()) {}

func (*Immediate) OnWrite(*terminal.Terminal, terminal.WriteState) bool {
	return false
}

func (*Immediate) Flush() bool {
	return true
}

func (*Immediate) Dispose() {}
