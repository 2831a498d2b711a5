package terminal

import "github.com/hnimtadd/lineterm/terminal/sgr"

// Cell is one column of the current line: either empty (erased, or a
// gap left by forward cursor motion) or a glyph together with the
// style it was written under. The zero value is the empty cell.
type Cell struct {
	// Char is the visible character, or 0 for an empty cell.
	Char rune

	// Style is the interned attribute record active when the glyph was
	// written. nil means the empty record. Empty cells ignore it.
	Style *sgr.Attributes
}

// IsEmpty reports whether the cell holds no glyph.
func (c Cell) IsEmpty() bool {
	return c.Char == 0
}

// style returns the cell's attribute record by value.
func (c Cell) style() sgr.Attributes {
	if c.Style == nil {
		return sgr.Attributes{}
	}
	return *c.Style
}
