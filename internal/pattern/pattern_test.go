package pattern

import (
	"errors"
	"testing"

	"github.com/coregx/coregex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, patterns []string, mods Modifiers) Matcher {
	t.Helper()
	m, err := Compile(patterns, mods)
	require.NoError(t, err)
	return m
}

// TestFixedStringNonOverlapping covers the canonical "ab" in "ababab" case:
// three non-overlapping occurrences at 0, 2 and 4.
func TestFixedStringNonOverlapping(t *testing.T) {
	m := mustCompile(t, []string{"ab"}, Modifiers{FixedStrings: true})

	spans := m.FindAll([]byte("ababab"))
	require.Len(t, spans, 3)
	assert.Equal(t, []Span{{0, 2}, {2, 4}, {4, 6}}, spans)
	assert.True(t, m.Match([]byte("ababab")))
}

func TestFixedStringNoMatch(t *testing.T) {
	m := mustCompile(t, []string{"zz"}, Modifiers{FixedStrings: true})

	assert.Nil(t, m.FindAll([]byte("ababab")))
	assert.False(t, m.Match([]byte("ababab")))
}

func TestFixedStringIgnoreCase(t *testing.T) {
	m := mustCompile(t, []string{"HeLLo"}, Modifiers{FixedStrings: true, IgnoreCase: true})

	spans := m.FindAll([]byte("hello HELLO Hello"))
	assert.Equal(t, []Span{{0, 5}, {6, 11}, {12, 17}}, spans)
}

// TestEmptyFixedString verifies the zero-width contract: one occurrence at
// every position, never repeating.
func TestEmptyFixedString(t *testing.T) {
	m := mustCompile(t, []string{""}, Modifiers{FixedStrings: true})

	spans := m.FindAll([]byte("abc"))
	require.Len(t, spans, 4)
	for i, s := range spans {
		assert.Equal(t, Span{i, i}, s)
	}
	assert.True(t, m.Match([]byte("")))
}

func TestFixedStringSet(t *testing.T) {
	m := mustCompile(t, []string{"foo", "bar"}, Modifiers{FixedStrings: true})

	spans := m.FindAll([]byte("a foo then bar then foo"))
	assert.Equal(t, []Span{{2, 5}, {11, 14}, {20, 23}}, spans)
	assert.True(t, m.Match([]byte("only bar here")))
	assert.False(t, m.Match([]byte("neither")))
}

func TestFixedStringSetIgnoreCase(t *testing.T) {
	m := mustCompile(t, []string{"Foo", "BAR"}, Modifiers{FixedStrings: true, IgnoreCase: true})

	assert.True(t, m.Match([]byte("fOO")))
	assert.True(t, m.Match([]byte("bar")))
	assert.False(t, m.Match([]byte("baz")))
}

// TestFixedStringSetLeftmost pins the selection order for overlapping
// needles: the occurrence starting earliest wins, even when a later,
// shorter needle would end first. "abcd" starts at 1 and must beat the
// "bc" inside it.
func TestFixedStringSetLeftmost(t *testing.T) {
	m := mustCompile(t, []string{"abcd", "bc"}, Modifiers{FixedStrings: true})

	spans := m.FindAll([]byte("xabcdx bc"))
	assert.Equal(t, []Span{{1, 5}, {7, 9}}, spans)
}

// TestFixedStringSetRoundTrip checks that a fixed-string set and the
// escaped regex alternation built from the same needles produce identical
// match sets, including over inputs where the needles overlap.
func TestFixedStringSetRoundTrip(t *testing.T) {
	sets := [][]string{
		{"abcd", "bc"},
		{"foo", "oof"},
		{"aa", "aaa"},
	}
	inputs := []string{
		"xabcdx bc",
		"foofoo oof",
		"aaaa",
		"no hit",
		"",
	}
	for _, set := range sets {
		lit := mustCompile(t, set, Modifiers{FixedStrings: true})

		escaped := make([]string, len(set))
		for i, raw := range set {
			escaped[i] = coregex.QuoteMeta(raw)
		}
		esc := mustCompile(t, escaped, Modifiers{})

		for _, input := range inputs {
			litSpans := lit.FindAll([]byte(input))
			escSpans := esc.FindAll([]byte(input))
			assert.Equal(t, escSpans, litSpans,
				"set %q input %q: set and escaped-regex match sets differ", set, input)
		}
	}
}

// TestWordRegexp covers the canonical word-boundary case: only the
// standalone "cat" token matches, not "concatenate" or "scatter".
func TestWordRegexp(t *testing.T) {
	m := mustCompile(t, []string{"cat"}, Modifiers{WordRegexp: true})

	spans := m.FindAll([]byte("concatenate cat scatter"))
	require.Len(t, spans, 1)
	assert.Equal(t, Span{12, 15}, spans[0])
}

// Word anchoring must bound an alternation as a whole, not just its
// outermost branches.
func TestWordRegexpAlternation(t *testing.T) {
	m := mustCompile(t, []string{"cat|dog"}, Modifiers{WordRegexp: true})

	assert.True(t, m.Match([]byte("a dog here")))
	assert.False(t, m.Match([]byte("dogged pursuit")))
	assert.False(t, m.Match([]byte("bobcat")))
}

func TestWordRegexpFixedString(t *testing.T) {
	m := mustCompile(t, []string{"c.t"}, Modifiers{FixedStrings: true, WordRegexp: true})

	// Escaped, so the dot is literal.
	assert.True(t, m.Match([]byte("a c.t token")))
	assert.False(t, m.Match([]byte("a cat token")))
	assert.False(t, m.Match([]byte("ac.tb")))
}

func TestLineRegexp(t *testing.T) {
	m := mustCompile(t, []string{"foo"}, Modifiers{LineRegexp: true})

	assert.True(t, m.Match([]byte("foo")))
	assert.False(t, m.Match([]byte("foofoo")))
	assert.False(t, m.Match([]byte(" foo")))

	spans := m.FindAll([]byte("foo"))
	require.Len(t, spans, 1)
	assert.Equal(t, Span{0, 3}, spans[0])
}

func TestIgnoreCaseRegex(t *testing.T) {
	m := mustCompile(t, []string{"h[ae]llo"}, Modifiers{IgnoreCase: true})

	assert.True(t, m.Match([]byte("HALLO there")))
	assert.True(t, m.Match([]byte("Hello there")))
	assert.False(t, m.Match([]byte("hullo there")))
}

func TestMultiplePatternsRegex(t *testing.T) {
	m := mustCompile(t, []string{"^start", "end$"}, Modifiers{})

	assert.True(t, m.Match([]byte("start of line")))
	assert.True(t, m.Match([]byte("at the end")))
	assert.False(t, m.Match([]byte("middle")))
}

func TestInvalidPattern(t *testing.T) {
	_, err := Compile([]string{"(unclosed"}, Modifiers{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

func TestNoPattern(t *testing.T) {
	_, err := Compile(nil, Modifiers{})
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

// TestFixedStringRoundTrip checks that the literal engine and the escaped
// regex equivalent produce identical match sets for the same input.
func TestFixedStringRoundTrip(t *testing.T) {
	inputs := []string{
		"ababab",
		"a.b a.b",
		"no hit",
		"",
		"[x] (y) {z}",
		"edge a.b",
	}
	for _, raw := range []string{"ab", "a.b", "[x]", "(y)"} {
		lit := mustCompile(t, []string{raw}, Modifiers{FixedStrings: true})
		esc := mustCompile(t, []string{coregex.QuoteMeta(raw)}, Modifiers{})

		for _, input := range inputs {
			litSpans := lit.FindAll([]byte(input))
			escSpans := esc.FindAll([]byte(input))
			assert.Equal(t, escSpans, litSpans,
				"pattern %q input %q: literal and escaped-regex match sets differ", raw, input)
		}
	}
}

// Zero-width regex matches must advance and terminate.
func TestZeroWidthRegex(t *testing.T) {
	m := mustCompile(t, []string{"x*"}, Modifiers{})

	spans := m.FindAll([]byte("axxa"))
	require.NotEmpty(t, spans)
	for i := 1; i < len(spans); i++ {
		assert.Greater(t, spans[i].Start, spans[i-1].Start, "spans must advance")
	}
	for _, s := range spans {
		assert.LessOrEqual(t, s.Start, s.End)
	}
}
