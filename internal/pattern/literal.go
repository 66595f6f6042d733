package pattern

import (
	"bytes"
)

// compileLiteral builds the single-needle fixed-string engine. Case
// folding is ASCII and byte-for-byte, so spans reported against the
// folded line are valid offsets into the original.
func compileLiteral(raw string, ignoreCase bool) Matcher {
	needle := []byte(raw)
	if ignoreCase {
		needle = foldASCII(needle)
	}
	return &literalMatcher{needle: needle, fold: ignoreCase}
}

// foldASCII lowercases ASCII letters without changing the byte length.
func foldASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

// literalMatcher finds non-overlapping occurrences of a single needle.
type literalMatcher struct {
	needle []byte
	fold   bool
}

func (m *literalMatcher) FindAll(line []byte) []Span {
	hay := line
	if m.fold {
		hay = foldASCII(line)
	}

	// The empty needle matches once at every position, including the end
	// of the line.
	if len(m.needle) == 0 {
		spans := make([]Span, len(line)+1)
		for i := range spans {
			spans[i] = Span{Start: i, End: i}
		}
		return spans
	}

	var spans []Span
	pos := 0
	for pos <= len(hay)-len(m.needle) {
		i := bytes.Index(hay[pos:], m.needle)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(m.needle)
		spans = append(spans, Span{Start: start, End: end})
		pos = end
	}
	return spans
}

func (m *literalMatcher) Match(line []byte) bool {
	if len(m.needle) == 0 {
		return true
	}
	if m.fold {
		return bytes.Contains(foldASCII(line), m.needle)
	}
	return bytes.Contains(line, m.needle)
}
