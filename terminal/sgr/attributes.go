// SGR (Select Graphic Rendition) attribute parsing and composition.
//
// This is implemented based on: https://vt100.net/docs/vt510-rm/SGR.html
package sgr

import (
	"strconv"
	"strings"

	"github.com/hnimtadd/lineterm/terminal/color"
	"github.com/hnimtadd/lineterm/terminal/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Flag is a tri-state boolean attribute. Unset means "inherit"; Off
// means the attribute was explicitly turned off (22/23/...). The
// distinction matters for composition and equality, not for emission:
// only On is ever emitted.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagOn
	FlagOff
)

// Attributes is the style record a glyph is written with. The zero
// value is the empty record: every field unset.
type Attributes struct {
	Fg color.Color
	Bg color.Color

	Bold          Flag
	Faint         Flag
	Italic        Flag
	Underline     Flag
	Blink         Flag
	Inverse       Flag
	Invisible     Flag
	Strikethrough Flag
}

// IsEmpty reports whether no field is set at all. An explicitly-off
// flag counts as set.
func (a Attributes) IsEmpty() bool {
	return a == Attributes{}
}

// Equal compares all ten fields, keeping unset distinct from
// explicitly off.
func (a Attributes) Equal(b Attributes) bool {
	return a == b
}

// Hash returns a stable hash of the record, used by the intern table.
func (a Attributes) Hash() uint64 {
	hashed, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, "sgr attributes must be hashable")
	return hashed
}

// Parse walks an SGR parameter list into an attribute record.
//
// A reset (0) immediately returns the empty record with reset true,
// discarding every parameter before and after it; callers replace
// their state outright instead of composing. The reset flag is what
// distinguishes a real SGR 0 from a list that merely produced no set
// fields. A malformed extended color (38/48 with missing
// sub-parameters) leaves the color unchanged and ends the walk, since
// the remaining values cannot be told apart from the missing
// sub-parameters.
func Parse(params []int) (attrs Attributes, reset bool) {
	var a Attributes
	for i := 0; i < len(params); i++ {
		switch p := params[i]; {
		case p == 0:
			return Attributes{}, true
		case p == 1:
			a.Bold = FlagOn
		case p == 2:
			a.Faint = FlagOn
		case p == 3:
			a.Italic = FlagOn
		case p == 4:
			a.Underline = FlagOn
		case p == 5:
			a.Blink = FlagOn
		case p == 7:
			a.Inverse = FlagOn
		case p == 8:
			a.Invisible = FlagOn
		case p == 9:
			a.Strikethrough = FlagOn
		case p == 22:
			// Normal intensity clears both weight attributes.
			a.Bold = FlagOff
			a.Faint = FlagOff
		case p == 23:
			a.Italic = FlagOff
		case p == 24:
			a.Underline = FlagOff
		case p == 25:
			a.Blink = FlagOff
		case p == 27:
			a.Inverse = FlagOff
		case p == 28:
			a.Invisible = FlagOff
		case p == 29:
			a.Strikethrough = FlagOff
		case p >= 30 && p <= 37:
			a.Fg = color.Palette(p - 30)
		case p == 38:
			c, skip := parseExtendedColor(params[i+1:])
			if skip == 0 {
				// Malformed sub-parameters; the rest of the list is
				// unusable, leave the record as built so far.
				return a, false
			}
			a.Fg = c
			i += skip
		case p == 39:
			a.Fg = color.Default()
		case p >= 40 && p <= 47:
			a.Bg = color.Palette(p - 40)
		case p == 48:
			c, skip := parseExtendedColor(params[i+1:])
			if skip == 0 {
				return a, false
			}
			a.Bg = c
			i += skip
		case p == 49:
			a.Bg = color.Default()
		case p >= 90 && p <= 97:
			a.Fg = color.Palette(p - 90 + 8)
		case p >= 100 && p <= 107:
			a.Bg = color.Palette(p - 100 + 8)
		default:
			// Unknown parameter, skipped.
		}
	}
	return a, false
}

// parseExtendedColor parses the sub-parameters of 38/48: either
// "5;n" (indexed) or "2;r;g;b" (direct). Returns the color and how
// many parameters were consumed, or skip 0 when malformed.
func parseExtendedColor(rest []int) (color.Color, int) {
	if len(rest) >= 2 && rest[0] == 5 {
		return color.Palette(rest[1]), 2
	}
	if len(rest) >= 4 && rest[0] == 2 {
		return color.FromRGB(clampByte(rest[1]), clampByte(rest[2]), clampByte(rest[3])), 4
	}
	return color.Color{}, 0
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// Compose overlays one record onto another: every field present in
// overlay wins, every absent field falls through to base. Presence is
// per-field, so an overlay carrying only Bold does not clear colors —
// but an explicit-default color (SGR 39/49) is present and does clear
// the base color. Explicit defaults normalize back to unset in the
// result, so composed records never carry the marker.
func Compose(base, overlay Attributes) Attributes {
	out := base
	if overlay.Fg.IsPresent() {
		out.Fg = overlay.Fg
		if out.Fg.Type == color.TypeDefault {
			out.Fg = color.Color{}
		}
	}
	if overlay.Bg.IsPresent() {
		out.Bg = overlay.Bg
		if out.Bg.Type == color.TypeDefault {
			out.Bg = color.Color{}
		}
	}
	if overlay.Bold != FlagUnset {
		out.Bold = overlay.Bold
	}
	if overlay.Faint != FlagUnset {
		out.Faint = overlay.Faint
	}
	if overlay.Italic != FlagUnset {
		out.Italic = overlay.Italic
	}
	if overlay.Underline != FlagUnset {
		out.Underline = overlay.Underline
	}
	if overlay.Blink != FlagUnset {
		out.Blink = overlay.Blink
	}
	if overlay.Inverse != FlagUnset {
		out.Inverse = overlay.Inverse
	}
	if overlay.Invisible != FlagUnset {
		out.Invisible = overlay.Invisible
	}
	if overlay.Strikethrough != FlagUnset {
		out.Strikethrough = overlay.Strikethrough
	}
	return out
}

// Sequence emits the minimal CSI m sequence reproducing a. Flags come
// first in the fixed order 1 2 3 4 5 7 8 9, then foreground, then
// background, each in its narrowest form. The empty record emits "".
func (a Attributes) Sequence() string {
	var codes []string
	for _, fc := range []struct {
		flag Flag
		code string
	}{
		{a.Bold, "1"},
		{a.Faint, "2"},
		{a.Italic, "3"},
		{a.Underline, "4"},
		{a.Blink, "5"},
		{a.Inverse, "7"},
		{a.Invisible, "8"},
		{a.Strikethrough, "9"},
	} {
		if fc.flag == FlagOn {
			codes = append(codes, fc.code)
		}
	}
	codes = appendColorCodes(codes, a.Fg, 30, 90, "38")
	codes = appendColorCodes(codes, a.Bg, 40, 100, "48")
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// appendColorCodes picks the narrowest encoding for a color: the
// standard range, the bright range, 256-color indexed, or direct RGB.
func appendColorCodes(codes []string, c color.Color, stdBase, brightBase int, extended string) []string {
	switch c.Type {
	case color.TypePalette:
		switch n := int(c.Palette); {
		case n < 8:
			codes = append(codes, strconv.Itoa(stdBase+n))
		case n < 16:
			codes = append(codes, strconv.Itoa(brightBase+n-8))
		default:
			codes = append(codes, extended, "5", strconv.Itoa(n))
		}
	case color.TypeRGB:
		codes = append(codes, extended, "2",
			strconv.Itoa(int(c.RGB.R)),
			strconv.Itoa(int(c.RGB.G)),
			strconv.Itoa(int(c.RGB.B)))
	}
	return codes
}
