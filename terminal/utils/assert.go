package utils

import "fmt"

// Assert panics when condition is false. Used for internal invariants
// that indicate a programming error, never for input validation. An
// optional message may be given, fmt.Sprintf-style:
//
//	utils.Assert(pos <= len(buf), "pos %d past buffer %d", pos, len(buf))
func Assert(condition bool, msgAndArgs ...any) {
	if condition {
		return
	}
	switch {
	case len(msgAndArgs) == 0:
		panic("failed assertion")
	case len(msgAndArgs) == 1:
		panic(fmt.Sprint(msgAndArgs[0]))
	default:
		format, ok := msgAndArgs[0].(string)
		if !ok {
			panic(fmt.Sprint(msgAndArgs...))
		}
		panic(fmt.Sprintf(format, msgAndArgs[1:]...))
	}
}
