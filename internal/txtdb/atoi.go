package txtdb

import "strings"

// Atoi parses the leading decimal integer of s the way the legacy tables
// were read: leading blanks are skipped, an optional sign is accepted and
// parsing stops at the first non-digit. Anything unparsable yields 0.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -n
	}
	return n
}

// ParseMask parses an unsigned integer with C base-0 rules: a 0x prefix
// selects hex, a leading 0 selects octal, otherwise decimal. Trailing
// garbage is ignored.
func ParseMask(s string) uint64 {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	s = strings.TrimPrefix(s, "+")
	base := uint64(10)
	switch {
	case len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isDigit(s[2], 16):
		base, s = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i], base) {
			break
		}
		n = n*base + digitValue(s[i])
	}
	return n
}

func isDigit(c byte, base uint64) bool {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c-'0') < base
	case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return base == 16
	}
	return false
}

func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	default:
		return uint64(c-'A') + 10
	}
}

// SplitPair parses a packed "a:b" column. A single value fills only the
// first result, a missing value is 0 and components after the second are
// ignored.
func SplitPair(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	first, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Atoi(first), 0
	}
	second, _, _ := strings.Cut(rest, ":")
	return Atoi(first), Atoi(second)
}
