// Package scanner splits a byte source into line records without copying.
//
// A Line is a view into the source: terminator excluded, offsets absolute.
// The scanner does not interpret encoding; binary content is just bytes.
package scanner

import "bytes"

// terminator is the line-ending byte.
const terminator = '\n'

// Line is one line of a source: the half-open byte range [Start, End)
// with the terminator excluded, and a 1-based number that strictly
// increases within one source.
type Line struct {
	Start  int
	End    int
	Number int
}

// Bytes slices the line out of the source it was produced from.
func (l Line) Bytes(data []byte) []byte {
	return data[l.Start:l.End]
}

// Scanner lazily yields the lines of one source.
type Scanner struct {
	data []byte
	pos  int
	num  int
}

// New returns a scanner positioned at the start of data.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next returns the next line, or ok=false when the source is exhausted.
// A final line with no trailing terminator is still produced; a trailing
// terminator does not open an empty final line.
func (s *Scanner) Next() (Line, bool) {
	if s.pos >= len(s.data) {
		return Line{}, false
	}

	s.num++
	start := s.pos
	if i := bytes.IndexByte(s.data[s.pos:], terminator); i >= 0 {
		s.pos += i + 1
		return Line{Start: start, End: start + i, Number: s.num}, true
	}

	s.pos = len(s.data)
	return Line{Start: start, End: len(s.data), Number: s.num}, true
}

// Reset rewinds the scanner to the start of its source.
func (s *Scanner) Reset() {
	s.pos = 0
	s.num = 0
}
