package txtdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtoi(t *testing.T) {
	tests := map[string]int{
		"":           0,
		"42":         42,
		"  42":       42,
		"-7":         -7,
		"+3":         3,
		"12abc":      12,
		"0xFFFFFFFF": 0,
		"abc":        0,
		"17:5":       17,
	}
	for in, want := range tests {
		assert.Equal(t, want, Atoi(in), "Atoi(%q)", in)
	}
}

func TestParseMask(t *testing.T) {
	tests := map[string]uint64{
		"":           0,
		"0":          0,
		"0xFFFFFFFF": 0xFFFFFFFF,
		"0xfffffffe": 0xFFFFFFFE,
		"63":         63,
		"010":        8,
		" 0x02 ":     2,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseMask(in), "ParseMask(%q)", in)
	}
}

func TestSplitPair(t *testing.T) {
	tests := []struct {
		in       string
		one, two int
	}{
		{"", 0, 0},
		{"120", 120, 0},
		{"120:80", 120, 80},
		{"120:80:99", 120, 80},
		{":80", 0, 80},
		{"120:", 120, 0},
	}
	for _, tt := range tests {
		one, two := SplitPair(tt.in)
		assert.Equal(t, tt.one, one, tt.in)
		assert.Equal(t, tt.two, two, tt.in)
	}
}
