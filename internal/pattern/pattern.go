// Package pattern compiles raw pattern strings plus modifier flags into an
// immutable Matcher.
//
// A Matcher is built once per invocation and shared read-only across all
// inputs and goroutines. Two engines back it: a literal engine for plain
// fixed-string searches and the coregex engine for everything else. Both
// honor leftmost-first, non-overlapping, zero-width-safe semantics, so the
// rest of the pipeline never needs to know which one it got.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// ErrInvalidPattern marks a pattern that failed to compile. It is a
// configuration error: reported once, aborting the run before any input
// is scanned.
var ErrInvalidPattern = errors.New("invalid pattern")

// Span is a half-open byte range within a single line.
type Span struct {
	Start int
	End   int
}

// Matcher reports the occurrences of a compiled pattern within one line.
// Implementations are immutable and safe for concurrent use.
type Matcher interface {
	// FindAll returns every non-overlapping occurrence in leftmost-first
	// order. A zero-width occurrence never repeats at the same position.
	FindAll(line []byte) []Span

	// Match reports whether the line contains at least one occurrence.
	Match(line []byte) bool
}

// Modifiers selects how the raw pattern strings are interpreted.
type Modifiers struct {
	IgnoreCase   bool
	FixedStrings bool
	WordRegexp   bool
	LineRegexp   bool
}

// Compile turns one or more raw patterns into a Matcher. A line matches
// when any of the patterns matches it.
//
// A plain single fixed string uses the literal engine. Fixed strings
// combined with word or line anchoring, and sets of several fixed
// strings, are escaped and routed through the regex engine so that
// boundary semantics and leftmost-first selection across overlapping
// needles come from a single implementation.
func Compile(patterns []string, mods Modifiers) (Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no pattern specified", ErrInvalidPattern)
	}

	if mods.FixedStrings && !mods.WordRegexp && !mods.LineRegexp && len(patterns) == 1 {
		return compileLiteral(patterns[0], mods.IgnoreCase), nil
	}

	expr := regexSource(patterns, mods)
	re, err := coregex.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &regexMatcher{re: re}, nil
}

// regexSource builds the effective expression from the raw patterns and
// modifiers. Patterns are grouped before the word/line rewrites so that
// alternation is bounded as a whole.
func regexSource(patterns []string, mods Modifiers) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		if mods.FixedStrings {
			p = coregex.QuoteMeta(p)
		}
		parts[i] = "(?:" + p + ")"
	}

	expr := strings.Join(parts, "|")
	if mods.WordRegexp {
		expr = `\b(?:` + expr + `)\b`
	}
	if mods.LineRegexp {
		expr = `^(?:` + expr + `)$`
	}
	if mods.IgnoreCase {
		expr = `(?i)` + expr
	}
	return expr
}

// regexMatcher wraps a compiled coregex expression.
type regexMatcher struct {
	re *coregex.Regex
}

func (m *regexMatcher) FindAll(line []byte) []Span {
	indices := m.re.FindAllIndex(line, -1)
	if len(indices) == 0 {
		return nil
	}
	spans := make([]Span, len(indices))
	for i, idx := range indices {
		spans[i] = Span{Start: idx[0], End: idx[1]}
	}
	return spans
}

func (m *regexMatcher) Match(line []byte) bool {
	return m.re.Match(line)
}
