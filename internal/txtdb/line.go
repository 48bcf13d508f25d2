package txtdb

import (
	"strings"
)

// DefaultDelimiter separates columns in every legacy table.
const DefaultDelimiter = ','

// Scripted describes a table whose rows carry a fixed number of scalar
// columns followed by brace-delimited script columns.
//
//	501,Red_Potion,...,0,{ itemheal rand(45,65),0; },{},{}
type Scripted struct {
	Leading int
	Scripts []string // column names in source order, used in error messages
	Delim   byte
}

// StripComment removes a trailing // comment. It reports false when the
// line carries no data: it starts with //, or nothing but blanks remain.
func StripComment(line string) (string, bool) {
	if strings.HasPrefix(line, "//") {
		return "", false
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimLeft(line, " \t\r\n\v\f")
	if line == "" {
		return "", false
	}
	return line, true
}

// Split tokenizes one row into Leading scalar fields followed by one field
// per script column. Script fields exclude their wrapping braces and are
// returned verbatim. Split reports false for comment and blank lines.
func (s Scripted) Split(line string) ([]string, bool, error) {
	line, ok := StripComment(line)
	if !ok {
		return nil, false, nil
	}
	delim := s.delim()

	fields := make([]string, 0, s.Leading+len(s.Scripts))
	rest := line
	for i := 0; i < s.Leading; i++ {
		idx := strings.IndexByte(rest, delim)
		if idx < 0 {
			return nil, true, &RowError{ID: leadingID(line, delim), Err: ErrInsufficientColumns}
		}
		fields = append(fields, rest[:idx])
		rest = rest[idx+1:]
	}

	sep := "}" + string(delim)
	for i, column := range s.Scripts {
		if rest == "" || rest[0] != '{' {
			return nil, true, &RowError{ID: leadingID(line, delim), Column: column, Err: ErrInvalidFormat}
		}

		if i < len(s.Scripts)-1 {
			end := strings.Index(rest[1:], sep)
			if end < 0 {
				return nil, true, &RowError{ID: leadingID(line, delim), Column: column, Err: ErrInvalidFormat}
			}
			fields = append(fields, rest[1:1+end])
			rest = rest[1+end+len(sep):]
			continue
		}

		end, err := lastBrace(rest)
		if err != nil {
			return nil, true, &RowError{ID: leadingID(line, delim), Err: err}
		}
		fields = append(fields, rest[1:end])
	}

	return fields, true, nil
}

// lastBrace locates the closing brace of the final script column. The
// terminal character is tried first; otherwise the braces are counted so
// that trailing blanks after the brace are tolerated.
func lastBrace(rest string) (int, error) {
	trimmed := strings.TrimSuffix(rest, "\n")
	if n := len(trimmed); n > 1 && trimmed[n-1] == '}' {
		return n - 1, nil
	}

	open, closed, last := 0, 0, -1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			open++
		case '}':
			closed++
			last = i
		}
	}
	if open != closed || last < 0 {
		return 0, ErrMismatchedBraces
	}
	return last, nil
}

func leadingID(line string, delim byte) int {
	first, _, _ := strings.Cut(line, string(delim))
	return Atoi(first)
}

func (s Scripted) delim() byte {
	if s.Delim == 0 {
		return DefaultDelimiter
	}
	return s.Delim
}

// SplitColumns splits a plain row on delim. Line terminators are dropped;
// column values are returned untrimmed.
func SplitColumns(line string, delim byte) []string {
	line = strings.TrimRight(line, "\r\n")
	if delim == 0 {
		delim = DefaultDelimiter
	}
	return strings.Split(line, string(delim))
}
