package csi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Params(t *testing.T) {
	tests := []struct {
		name     string
		params   string
		expected []int
	}{
		{name: "empty", params: "", expected: []int{0}},
		{name: "single", params: "5", expected: []int{5}},
		{name: "multi", params: "1;31;4", expected: []int{1, 31, 4}},
		{name: "blank field", params: "1;;3", expected: []int{1, 0, 3}},
		{name: "only separator", params: ";", expected: []int{0, 0}},
		{name: "leading zeroes", params: "007", expected: []int{7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Classify(tc.params, 'm')
			assert.Equal(t, tc.expected, cmd.Params)
		})
	}
}

func TestClassify_Affects(t *testing.T) {
	style := []rune{'m'}
	cursor := []rune{'G', 'C', 'D', '`', 's', 'u'}
	erasure := []rune{'K', 'X', 'P', '@'}
	none := []rune{'A', 'B', 'H', 'f', 'J', 'S', 'T', 'L', 'M', 'q'}

	for _, final := range style {
		assert.Equal(t, Affects{Style: true}, Classify("", final).Affects)
	}
	for _, final := range cursor {
		assert.Equal(t, Affects{Cursor: true}, Classify("", final).Affects, "final %c", final)
	}
	for _, final := range erasure {
		assert.Equal(t, Affects{Erasure: true}, Classify("", final).Affects, "final %c", final)
	}
	for _, final := range none {
		assert.Equal(t, Affects{}, Classify("", final).Affects, "final %c", final)
	}
}

func TestCommand_Param(t *testing.T) {
	cmd := Classify("0;3", 'C')
	// Zero and missing both fall back to the default count.
	assert.Equal(t, 1, cmd.Param(0, 1))
	assert.Equal(t, 3, cmd.Param(1, 1))
	assert.Equal(t, 1, cmd.Param(2, 1))
}
