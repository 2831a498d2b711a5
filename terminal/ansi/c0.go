package ansi

// we only carry the C0 characters the line model reacts to; everything
// else in 0x00-0x1F is dropped by the tokenizer.
type c0 struct {
	NUL rune // NUL is the null character (Caret: ^@, Char: \0).
	BEL rune // BEL is the bell character (Caret: ^G, Char: \a).
	BS  rune // BS is the backspace character (Caret: ^H, Char: \b).
	HT  rune // HT is the horizontal tab character (Caret: ^I, Char: \t).
	LF  rune // LF is the line feed character (Caret: ^J, Char: \n).
	CR  rune // CR is the carriage return character (Caret: ^M, Char: \r).
	ESC rune // ESC is the escape character (Caret: ^[).
	SP  rune // SP is the space character.
	DEL rune // DEL is the delete character (0x7F).
}

// C0 (7-bit) control characters from ANSI.
//
// See chapter 3 of the VT100 user guide for the full table; only the
// subset the single-line terminal handles is named here:
// https://vt100.net/docs/vt100-ug/chapter3.html#S3.2
var C0 = c0{
	NUL: 0x00,
	BEL: 0x07,
	BS:  0x08,
	HT:  0x09,
	LF:  0x0A,
	CR:  0x0D,
	ESC: 0x1B,
	SP:  0x20,
	DEL: 0x7F,
}
