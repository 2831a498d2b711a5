package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scan tokenizes the whole input, returning every token in order.
func scan(input string) []Token {
	buf := []rune(input)
	var tokens []Token
	pos := 0
	for pos < len(buf) {
		token, consumed := Next(buf, pos)
		tokens = append(tokens, token)
		pos += consumed
	}
	return tokens
}

func TestNext_Printable(t *testing.T) {
	tokens := scan("ab")
	assert.Equal(t, []Token{
		{Kind: TokenPrintable, Char: 'a'},
		{Kind: TokenPrintable, Char: 'b'},
	}, tokens)
}

func TestNext_HighBitCharactersArePrintable(t *testing.T) {
	tokens := scan("éÿ")
	assert.Len(t, tokens, 2)
	for _, token := range tokens {
		assert.Equal(t, TokenPrintable, token.Kind)
	}
}

func TestNext_ControlCharacters(t *testing.T) {
	tokens := scan("\r\n\t\x08")
	assert.Equal(t, []Token{
		{Kind: TokenControl, Char: '\r'},
		{Kind: TokenControl, Char: '\n'},
		{Kind: TokenControl, Char: '\t'},
		{Kind: TokenControl, Char: '\x08'},
	}, tokens)
}

func TestNext_StrayControlBytesAreNone(t *testing.T) {
	for _, ch := range []rune{0x00, 0x01, 0x07, 0x0B, 0x0C, 0x0E, 0x1F} {
		token, consumed := Next([]rune{ch}, 0)
		assert.Equal(t, TokenNone, token.Kind, "byte %#x", ch)
		assert.Equal(t, 1, consumed)
	}
}

func TestNext_CSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		params   string
		cmd      rune
		consumed int
	}{
		{name: "no params", input: "\x1b[m", params: "", cmd: 'm', consumed: 3},
		{name: "single param", input: "\x1b[31m", params: "31", cmd: 'm', consumed: 5},
		{name: "multi param", input: "\x1b[1;31;4m", params: "1;31;4", cmd: 'm', consumed: 9},
		{name: "backtick final", input: "\x1b[5`", params: "5", cmd: '`', consumed: 4},
		{name: "at final", input: "\x1b[2@", params: "2", cmd: '@', consumed: 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, consumed := Next([]rune(tc.input), 0)
			assert.Equal(t, TokenCSI, token.Kind)
			assert.Equal(t, tc.params, token.Params)
			assert.Equal(t, tc.cmd, token.Cmd)
			assert.Equal(t, tc.consumed, consumed)
		})
	}
}

func TestNext_PrivateCSIFallsBackToSkip(t *testing.T) {
	// ESC [ ? ... is not in the supported grammar: the ESC is skipped
	// alone and the rest re-scans as ordinary text.
	tokens := scan("\x1b[?25h")
	assert.Equal(t, TokenEscape, tokens[0].Kind)
	assert.Equal(t, string(C0.ESC), tokens[0].Data)
	assert.Equal(t, TokenPrintable, tokens[1].Kind)
	assert.Equal(t, '[', tokens[1].Char)
}

func TestNext_TwoByteEscapes(t *testing.T) {
	for _, ch := range "78=>HM" {
		token, consumed := Next([]rune{C0.ESC, ch}, 0)
		assert.Equal(t, TokenEscape, token.Kind, "ESC %c", ch)
		assert.Equal(t, string(ch), token.Data)
		assert.Equal(t, 2, consumed)
	}
}

func TestNext_UnknownEscapeSkipsESCOnly(t *testing.T) {
	token, consumed := Next([]rune("\x1bQrest"), 0)
	assert.Equal(t, TokenEscape, token.Kind)
	assert.Equal(t, string(C0.ESC), token.Data)
	assert.Equal(t, 1, consumed)
}

func TestNext_OSC(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		consumed int
	}{
		{name: "BEL terminated", input: "\x1b]0;title\x07", consumed: 10},
		{name: "ST terminated", input: "\x1b]0;title\x1b\\", consumed: 11},
		{name: "unterminated at end", input: "\x1b]0;title", consumed: 9},
		{name: "DCS payload", input: "\x1bPdata\x07", consumed: 7},
		{name: "PM payload", input: "\x1b^hi\x07", consumed: 5},
		{name: "APC payload", input: "\x1b_hi\x07", consumed: 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token, consumed := Next([]rune(tc.input), 0)
			assert.Equal(t, TokenEscape, token.Kind)
			assert.Equal(t, tc.consumed, consumed)
		})
	}
}

func TestNext_OSCCutByLineControls(t *testing.T) {
	// CR/LF end the payload without being consumed.
	tokens := scan("\x1b]0;title\nnext")
	assert.Equal(t, TokenEscape, tokens[0].Kind)
	assert.Equal(t, TokenControl, tokens[1].Kind)
	assert.Equal(t, '\n', tokens[1].Char)
}

func TestNext_IncompleteTrailingESC(t *testing.T) {
	token, consumed := Next([]rune("\x1b"), 0)
	assert.Equal(t, TokenIncomplete, token.Kind)
	assert.Equal(t, "\x1b", token.Data)
	assert.Equal(t, 1, consumed)
}

func TestNext_IncompleteCSIInProgress(t *testing.T) {
	for _, input := range []string{"\x1b[", "\x1b[3", "\x1b[31;4"} {
		token, consumed := Next([]rune(input), 0)
		assert.Equal(t, TokenIncomplete, token.Kind, "input %q", input)
		assert.Equal(t, input, token.Data)
		assert.Equal(t, len([]rune(input)), consumed)
	}
}

func TestNext_ESCBeforeTextIsNotIncomplete(t *testing.T) {
	// Only a trailing fragment is incomplete; mid-buffer the skip
	// policy applies when the sequence cannot be CSI.
	tokens := scan("\x1b[31?")
	assert.Equal(t, TokenEscape, tokens[0].Kind)
	assert.Equal(t, string(C0.ESC), tokens[0].Data)
	assert.Equal(t, TokenPrintable, tokens[1].Kind)
}
