// Package output turns engine events into formatted records and tracks
// the run-wide result.
//
// Formatting follows a fixed field order: optional filename prefix,
// optional line number, optional byte offset, then the whole line or the
// matched substring, with ":" separating the fields. The count and
// file-listing modes suppress per-line records entirely; the run-wide
// Status decides the process exit code.
package output

import (
	"io"
	"strconv"
	"sync"

	"github.com/harrison/grit/internal/engine"
)

// delimiter separates record fields.
const delimiter = ':'

// Config selects what each record carries.
type Config struct {
	// ShowFilename prefixes every record with the input's identifier.
	ShowFilename bool
	// LineNumber adds the 1-based line number.
	LineNumber bool
	// ByteOffset adds the absolute byte offset: the line start in
	// whole-line mode, the match start in only-matching mode.
	ByteOffset bool
}

// Printer renders the records of one input into a writer. It is not safe
// for concurrent use; each input scan owns its own printer.
type Printer struct {
	w    io.Writer
	cfg  Config
	name string
	buf  []byte
}

// NewPrinter returns a printer for the input identified by name.
func NewPrinter(w io.Writer, cfg Config, name string) *Printer {
	return &Printer{w: w, cfg: cfg, name: name}
}

// Record writes the record(s) for one matching line. With span data one
// record per span is written, carrying just the matched substring;
// otherwise the whole line is written once.
func (p *Printer) Record(data []byte, ev engine.Event) {
	if ev.Spans == nil {
		p.record(ev.Line.Number, ev.Line.Start, ev.Line.Bytes(data))
		return
	}
	for _, span := range ev.Spans {
		start := ev.Line.Start + span.Start
		end := ev.Line.Start + span.End
		p.record(ev.Line.Number, start, data[start:end])
	}
}

// Count writes the final match tally for this input.
func (p *Printer) Count(n uint64) {
	p.buf = p.buf[:0]
	if p.cfg.ShowFilename {
		p.buf = append(p.buf, p.name...)
		p.buf = append(p.buf, delimiter)
	}
	p.buf = strconv.AppendUint(p.buf, n, 10)
	p.buf = append(p.buf, '\n')
	p.w.Write(p.buf)
}

// Name writes just the input's identifier (the files-with-matches and
// files-without-match modes).
func (p *Printer) Name() {
	p.buf = append(p.buf[:0], p.name...)
	p.buf = append(p.buf, '\n')
	p.w.Write(p.buf)
}

func (p *Printer) record(lineNum, offset int, text []byte) {
	p.buf = p.buf[:0]
	if p.cfg.ShowFilename {
		p.buf = append(p.buf, p.name...)
		p.buf = append(p.buf, delimiter)
	}
	if p.cfg.LineNumber {
		p.buf = strconv.AppendInt(p.buf, int64(lineNum), 10)
		p.buf = append(p.buf, delimiter)
	}
	if p.cfg.ByteOffset {
		p.buf = strconv.AppendInt(p.buf, int64(offset), 10)
		p.buf = append(p.buf, delimiter)
	}
	p.buf = append(p.buf, text...)
	p.buf = append(p.buf, '\n')
	p.w.Write(p.buf)
}

// Status accumulates the run-wide result across inputs. Safe for
// concurrent use; the reduction is a commutative OR.
type Status struct {
	mu      sync.Mutex
	matched bool
	failed  bool
}

// RecordMatch folds one input's matched flag into the run result.
func (s *Status) RecordMatch(matched bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matched = s.matched || matched
}

// RecordError notes a per-input or configuration failure.
func (s *Status) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
}

// Matched reports whether any input matched so far.
func (s *Status) Matched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matched
}

// ExitCode maps the accumulated result to the process exit status:
// 0 when at least one match was found, 2 when no match was found and an
// error occurred, 1 otherwise.
func (s *Status) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.matched:
		return 0
	case s.failed:
		return 2
	default:
		return 1
	}
}
