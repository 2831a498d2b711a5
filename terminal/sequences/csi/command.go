package csi

import (
	"fmt"
	"strconv"
	"strings"
)

// Affects tags which aspects of the line a CSI command touches. The
// emission strategies key their volatility decision off these.
type Affects struct {
	Cursor  bool
	Erasure bool
	Style   bool
}

// Command is a classified CSI sequence.
type Command struct {
	Final   rune
	Params  []int
	Affects Affects
}

func (c Command) String() string {
	return fmt.Sprintf("CSI %v %q", c.Params, c.Final)
}

// Param returns the i-th parameter, or def when it is missing or zero.
// Most CSI commands treat 0 as "use the default count".
func (c Command) Param(i, def int) int {
	if i >= len(c.Params) || c.Params[i] == 0 {
		return def
	}
	return c.Params[i]
}

// Erase in Line mode (CSI K).
type ELMode uint8

const (
	ELModeRight ELMode = 0
	ELModeLeft  ELMode = 1
	ELModeAll   ELMode = 2
)

// Classify parses the raw parameter characters and final byte of a CSI
// sequence. Parameters split on ';'; a blank or malformed field becomes
// 0, and an empty parameter string yields the single parameter 0.
func Classify(params string, final rune) Command {
	var ps []int
	if params == "" {
		ps = []int{0}
	} else {
		fields := strings.Split(params, ";")
		ps = make([]int, len(fields))
		for i, f := range fields {
			// Atoi failure (blank field) leaves the zero in place.
			if n, err := strconv.Atoi(f); err == nil {
				ps[i] = n
			}
		}
	}
	return Command{
		Final:   final,
		Params:  ps,
		Affects: affectsOf(final),
	}
}

// affectsOf tags the command per its line-level effect. Vertical
// motion (A B H f), display erase (J) and scrolling (S T L M) are
// recognized no-ops on a single line, so they carry no tag.
func affectsOf(final rune) Affects {
	switch final {
	case 'm':
		return Affects{Style: true}
	case 'G', 'C', 'D', '`', 's', 'u':
		return Affects{Cursor: true}
	case 'K', 'X', 'P', '@':
		return Affects{Erasure: true}
	default:
		return Affects{}
	}
}
