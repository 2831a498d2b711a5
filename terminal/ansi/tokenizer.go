package ansi

// Tokenizer for the subset of ANSI the line model understands.
//
// Next is a pure function over (buf, pos); the only state a streaming
// caller has to carry between chunks is the TokenIncomplete fragment.
// This mirrors how the redaction tokenizers in the wild carry a partial
// escape across Push calls, except the carry here is bounded: a lone
// ESC or a CSI in progress, nothing else. An OSC-style string cut off
// by the chunk boundary is treated as complete because its payload is
// discarded anyway.

// isCSIParam reports whether r may appear in a CSI parameter list.
// Intermediate bytes (SP ! " # ...) are not supported; a CSI carrying
// them fails the match and falls back to the ESC skip policy.
func isCSIParam(r rune) bool {
	return (r >= '0' && r <= '9') || r == ';'
}

// isCSIFinal reports whether r concludes a CSI sequence.
func isCSIFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '@' || r == '`'
}

// isOSCIntro reports whether r, following ESC, opens an OSC-style
// string (OSC, DCS, PM, APC).
func isOSCIntro(r rune) bool {
	return r == ']' || r == 'P' || r == '^' || r == '_'
}

// isTwoByteEscape reports whether ESC r is one of the recognized
// two-byte escapes. Only 7 (DECSC) and 8 (DECRC) are acted on by the
// terminal; the rest are recognized so they do not leak into the text.
func isTwoByteEscape(r rune) bool {
	switch r {
	case '7', '8', '=', '>', 'H', 'M':
		return true
	}
	return false
}

// Next scans buf starting at pos and returns the next token together
// with the number of runes consumed. Consumed is always >= 1 while
// pos < len(buf), so a scan loop always makes progress.
func Next(buf []rune, pos int) (Token, int) {
	r := buf[pos]
	switch {
	case r == C0.LF, r == C0.CR, r == C0.HT, r == C0.BS:
		return Token{Kind: TokenControl, Char: r}, 1
	case r == C0.ESC:
		return nextEscape(buf, pos)
	case r >= C0.SP:
		// High-bit characters land here too: anything that is not a C0
		// control is passed through as printable.
		return Token{Kind: TokenPrintable, Char: r}, 1
	default:
		return Token{Kind: TokenNone, Char: r}, 1
	}
}

// nextEscape scans an ESC-introduced sequence at buf[pos].
//
// Precedence: CSI first, then OSC-style strings, then two-byte
// escapes. A trailing ESC or an unterminated CSI is reported as
// TokenIncomplete so the caller can buffer it; an ESC that matches no
// pattern is consumed alone and the following characters re-scan as
// ordinary input.
func nextEscape(buf []rune, pos int) (Token, int) {
	if pos+1 >= len(buf) {
		return Token{Kind: TokenIncomplete, Data: string(buf[pos:])}, len(buf) - pos
	}

	intro := buf[pos+1]
	switch {
	case intro == '[':
		j := pos + 2
		for j < len(buf) && isCSIParam(buf[j]) {
			j++
		}
		if j >= len(buf) {
			// CSI still in progress at the chunk boundary.
			return Token{Kind: TokenIncomplete, Data: string(buf[pos:])}, len(buf) - pos
		}
		if isCSIFinal(buf[j]) {
			return Token{
				Kind:   TokenCSI,
				Params: string(buf[pos+2 : j]),
				Cmd:    buf[j],
			}, j - pos + 1
		}
		// Not a parameter, not a final byte (e.g. a private-mode '?').
		// Skip the ESC alone; the rest re-scans as text.
		return Token{Kind: TokenEscape, Data: string(C0.ESC)}, 1

	case isOSCIntro(intro):
		j := pos + 2
		for j < len(buf) {
			r := buf[j]
			if r == C0.BEL || r == C0.ESC || r == C0.LF || r == C0.CR {
				break
			}
			j++
		}
		end := j
		switch {
		case j < len(buf) && buf[j] == C0.BEL:
			end = j + 1
		case j+1 < len(buf) && buf[j] == C0.ESC && buf[j+1] == '\\':
			end = j + 2
		}
		// Unterminated at chunk end, or cut short by CR/LF/ESC: the
		// payload is complete as far as we care, since it is dropped.
		return Token{Kind: TokenEscape, Data: string(buf[pos:end])}, end - pos

	case isTwoByteEscape(intro):
		return Token{Kind: TokenEscape, Data: string(intro)}, 2

	default:
		return Token{Kind: TokenEscape, Data: string(C0.ESC)}, 1
	}
}
