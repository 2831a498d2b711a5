package terminal

import (
	"slices"
	"strings"

	"github.com/hnimtadd/lineterm/logger"
	"github.com/hnimtadd/lineterm/terminal/ansi"
	"github.com/hnimtadd/lineterm/terminal/sequences/csi"
	"github.com/hnimtadd/lineterm/terminal/sgr"
	"github.com/hnimtadd/lineterm/terminal/utils"
)

// maxColumns bounds the single-line column count so hostile cursor
// positioning cannot force unbounded allocation. Printable writes at
// the bound are dropped silently; cursor moves past it are clamped.
const maxColumns = 1_000_000

const resetSequence = "\x1b[0m"

type (
	Options struct {
		Logger logger.Logger
	}

	// WriteState is what a Write reports to the emission strategy: the
	// OR of per-token flags over the chunk, plus the post-write cursor
	// and cell count. Flags are cleared at the start of every Write.
	WriteState struct {
		HadNewline        bool
		HadCarriageReturn bool
		HadCursorMovement bool
		HadErasure        bool

		CursorPosition int
		CellCount      int
	}

	// Terminal reconstructs one horizontal line of styled cells from a
	// stream of mixed text and control sequences. It has no vertical
	// axis: vertical motion, scroll regions and display erase are
	// recognized no-ops. The host renders and resets it at line
	// boundaries, which the line-ready callback announces.
	//
	// A Terminal is not safe for concurrent use; the host serializes
	// Write, RenderLine and Reset. The line-ready callback runs
	// reentrantly inside Write and must not call Write itself.
	Terminal struct {
		cells  []Cell
		cursor int

		// savedCursor is mutated only by DECSC / CSI s.
		savedCursor int

		// active is the style applied to subsequent glyphs; activeRef
		// is its interned pointer, shared by every cell written until
		// the next SGR. Both survive Reset so color carries across
		// lines.
		active    sgr.Attributes
		activeRef *sgr.Attributes
		styles    *sgr.Set

		// incomplete carries a trailing partial escape sequence between
		// Write calls. Non-empty only between calls.
		incomplete []rune

		state     WriteState
		lineReady func()

		logger logger.Logger
	}
)

func New(opts Options) *Terminal {
	lg := opts.Logger
	if lg == nil {
		lg = logger.DefaultLogger
	}
	return &Terminal{
		styles: sgr.NewSet(),
		logger: lg,
	}
}

// SetLineReadyCallback registers cb to be invoked synchronously from
// within Write at the moment each LF is processed, before the rest of
// the chunk continues. The host typically renders and resets the
// terminal from cb so that multiple newlines in one chunk flush as
// separate lines, in order.
func (t *Terminal) SetLineReadyCallback(cb func()) {
	t.lineReady = cb
}

// Cursor returns the current column.
func (t *Terminal) Cursor() int {
	return t.cursor
}

// HasContent reports whether the line holds any cells.
func (t *Terminal) HasContent() bool {
	return len(t.cells) > 0
}

// Write tokenizes chunk (prefixed by any incomplete sequence carried
// over from the previous call), applies every token in order, and
// reports the resulting state. Unrecognized bytes and sequences are
// dropped; Write never fails on well-formed input.
func (t *Terminal) Write(chunk string) WriteState {
	t.state = WriteState{}

	buf := t.incomplete
	t.incomplete = nil
	buf = append(buf, []rune(chunk)...)

	pos := 0
	for pos < len(buf) {
		token, consumed := ansi.Next(buf, pos)
		utils.Assert(consumed > 0, "tokenizer must make progress")
		pos += consumed

		switch token.Kind {
		case ansi.TokenIncomplete:
			utils.Assert(pos == len(buf), "incomplete token only at chunk end")
			t.incomplete = []rune(token.Data)
		case ansi.TokenPrintable:
			t.put(token.Char)
		case ansi.TokenControl:
			t.applyControl(token.Char)
		case ansi.TokenCSI:
			t.applyCSI(csi.Classify(token.Params, token.Cmd))
		case ansi.TokenEscape:
			t.applyEscape(token.Data)
		case ansi.TokenNone:
			// Stray control byte, dropped.
		}
	}

	utils.Assert(t.cursor >= 0 && t.cursor <= len(t.cells))
	t.state.CursorPosition = t.cursor
	t.state.CellCount = len(t.cells)
	return t.state
}

// Reset clears the cells and cursor for the next line. The active SGR
// state and the saved cursor survive: a color opened on one
// line stays in effect on the next until the stream closes it.
func (t *Terminal) Reset() {
	t.cells = t.cells[:0]
	t.cursor = 0
}

// Dispose clears everything, including state that survives Reset and
// the incomplete-sequence buffer.
func (t *Terminal) Dispose() {
	t.cells = nil
	t.cursor = 0
	t.savedCursor = 0
	t.active = sgr.Attributes{}
	t.activeRef = nil
	t.incomplete = nil
	t.styles.Reset()
}

// put writes ch at the cursor with the active style and advances.
// Writing past the end extends the line; intervening gap cells are
// already materialized by the move that created them.
func (t *Terminal) put(ch rune) {
	if t.cursor >= maxColumns {
		return
	}
	t.extend(t.cursor + 1)
	t.cells[t.cursor] = Cell{Char: ch, Style: t.activeRef}
	t.cursor++
}

// extend grows the line with empty cells until it holds at least n.
func (t *Terminal) extend(n int) {
	if n > maxColumns {
		n = maxColumns
	}
	for len(t.cells) < n {
		t.cells = append(t.cells, Cell{})
	}
}

// moveTo places the cursor at col, clamped to [0, maxColumns], and
// materializes any gap so the cursor never points past the cells.
func (t *Terminal) moveTo(col int) {
	if col < 0 {
		col = 0
	}
	if col > maxColumns {
		col = maxColumns
	}
	t.cursor = col
	t.extend(col)
}

func (t *Terminal) applyControl(ch rune) {
	switch ch {
	case ansi.C0.CR:
		t.cursor = 0
		t.state.HadCarriageReturn = true
	case ansi.C0.LF:
		t.state.HadNewline = true
		if t.lineReady != nil {
			t.lineReady()
		}
	case ansi.C0.BS:
		if t.cursor > 0 {
			t.cursor--
		}
		t.state.HadCursorMovement = true
	case ansi.C0.HT:
		// Advance to the next multiple of 8, writing styled spaces
		// into each traversed cell.
		next := (t.cursor/8 + 1) * 8
		for t.cursor < next && t.cursor < maxColumns {
			t.put(' ')
		}
	}
}

func (t *Terminal) applyCSI(cmd csi.Command) {
	if cmd.Affects.Cursor {
		t.state.HadCursorMovement = true
	}
	if cmd.Affects.Erasure {
		t.state.HadErasure = true
	}

	switch cmd.Final {
	case 'm':
		parsed, reset := sgr.Parse(cmd.Params)
		if reset {
			// SGR 0 (or a bare CSI m) discards the whole record.
			t.active = sgr.Attributes{}
		} else {
			t.active = sgr.Compose(t.active, parsed)
		}
		t.activeRef = t.styles.Intern(t.active)
	case 'G', '`':
		t.moveTo(cmd.Param(0, 1) - 1)
	case 'C':
		t.moveTo(t.cursor + cmd.Param(0, 1))
	case 'D':
		t.moveTo(t.cursor - cmd.Param(0, 1))
	case 'K':
		t.eraseLine(csi.ELMode(cmd.Params[0]))
	case 'X':
		t.eraseChars(cmd.Param(0, 1))
	case 'P':
		t.deleteChars(cmd.Param(0, 1))
	case '@':
		t.insertBlanks(cmd.Param(0, 1))
	case 's':
		t.savedCursor = t.cursor
	case 'u':
		t.moveTo(t.savedCursor)
	case 'A', 'B', 'H', 'f', 'J', 'S', 'T', 'L', 'M':
		// Vertical motion, display erase and scrolling have no meaning
		// on a single line.
	default:
		t.logger.Debug("dropping unhandled CSI", "cmd", cmd.String())
	}
}

func (t *Terminal) applyEscape(data string) {
	switch data {
	case "7": // DECSC
		t.savedCursor = t.cursor
		t.state.HadCursorMovement = true
	case "8": // DECRC
		t.moveTo(t.savedCursor)
		t.state.HadCursorMovement = true
	}
}

// eraseLine implements CSI K. ELModeLeft clears through the cursor
// cell inclusive and leaves the cursor where it is.
func (t *Terminal) eraseLine(mode csi.ELMode) {
	switch mode {
	case csi.ELModeRight:
		if t.cursor < len(t.cells) {
			t.cells = t.cells[:t.cursor]
		}
	case csi.ELModeLeft:
		for i := 0; i <= t.cursor && i < len(t.cells); i++ {
			t.cells[i] = Cell{}
		}
	case csi.ELModeAll:
		t.cells = t.cells[:0]
		t.cursor = 0
	}
}

// eraseChars implements CSI X: blank n cells at the cursor, extending
// the line as needed. The cursor does not move.
func (t *Terminal) eraseChars(n int) {
	t.extend(t.cursor + n)
	for i := t.cursor; i < t.cursor+n && i < len(t.cells); i++ {
		t.cells[i] = Cell{}
	}
}

// deleteChars implements CSI P: remove n cells at the cursor, shifting
// the remainder left.
func (t *Terminal) deleteChars(n int) {
	if t.cursor >= len(t.cells) {
		return
	}
	end := min(t.cursor+n, len(t.cells))
	t.cells = append(t.cells[:t.cursor], t.cells[end:]...)
}

// insertBlanks implements CSI @: insert n empty cells at the cursor,
// shifting the remainder right. The line stays within the column
// bound; shifted-off excess is dropped.
func (t *Terminal) insertBlanks(n int) {
	if t.cursor >= maxColumns {
		return
	}
	n = min(n, maxColumns-t.cursor)
	t.cells = slices.Insert(t.cells, t.cursor, make([]Cell, n)...)
	if len(t.cells) > maxColumns {
		t.cells = t.cells[:maxColumns]
	}
}

// RenderLine walks the cells up to the last glyph and produces the
// minimal ANSI string reproducing the visible line: SGR transitions
// are emitted only where adjacent cells differ, empty cells render as
// unstyled spaces, and the string always ends in the ground style.
func (t *Terminal) RenderLine() string {
	last := -1
	for i := len(t.cells) - 1; i >= 0; i-- {
		if !t.cells[i].IsEmpty() {
			last = i
			break
		}
	}
	if last < 0 {
		return ""
	}

	var b strings.Builder
	var current sgr.Attributes
	for _, cell := range t.cells[:last+1] {
		if cell.IsEmpty() {
			if !current.IsEmpty() {
				b.WriteString(resetSequence)
				current = sgr.Attributes{}
			}
			b.WriteByte(' ')
			continue
		}
		if style := cell.style(); !style.Equal(current) {
			switch {
			case style.IsEmpty():
				b.WriteString(resetSequence)
			case !current.IsEmpty():
				b.WriteString(resetSequence)
				b.WriteString(style.Sequence())
			default:
				b.WriteString(style.Sequence())
			}
			current = style
		}
		b.WriteRune(cell.Char)
	}
	if !current.IsEmpty() {
		b.WriteString(resetSequence)
	}
	return trimTrailing(b.String())
}

// trimTrailing removes trailing filler spaces: spaces immediately
// preceding a terminal reset (the reset is kept), and bare trailing
// spaces. Spaces only trail because of erasure or past-end cursor
// motion; inner spaces are never touched.
func trimTrailing(s string) string {
	if body, ok := strings.CutSuffix(s, resetSequence); ok {
		return strings.TrimRight(body, " ") + resetSequence
	}
	return strings.TrimRight(s, " ")
}
