// Package engine evaluates a compiled matcher against the lines of one
// input and aggregates the per-input outcome.
//
// The engine owns the selection semantics: inversion, only-matching span
// production and the max-count cutoff. Formatting belongs to the output
// package; the engine hands it events through a sink.
package engine

import (
	"github.com/harrison/grit/internal/pattern"
	"github.com/harrison/grit/internal/scanner"
)

// State describes how a scan ended.
type State int

const (
	// Exhausted means every line of the input was examined.
	Exhausted State = iota
	// MaxReached means the max-count cutoff stopped the scan early.
	MaxReached
	// Stopped means the sink asked the scan to stop.
	Stopped
)

// Event is one matching line. Spans carries the in-line match ranges when
// only-matching mode asked for them; under inversion no span data exists.
type Event struct {
	Line  scanner.Line
	Spans []pattern.Span
}

// Outcome is the per-input aggregate.
type Outcome struct {
	// Matched reports whether any line satisfied the post-inversion
	// predicate.
	Matched bool
	// MatchCount counts satisfying lines (lines, not spans).
	MatchCount uint64
	// Emitted counts events delivered to the sink.
	Emitted uint64
	// State records how the scan ended.
	State State
}

// Config selects the engine's per-line semantics.
type Config struct {
	// Invert negates the per-line match predicate. Span data is not
	// produced under inversion; it takes precedence over OnlyMatching.
	Invert bool
	// OnlyMatching requests the in-line spans of every match.
	OnlyMatching bool
	// MaxCount stops the scan once this many lines have satisfied the
	// predicate. Negative means unlimited.
	MaxCount int64
}

// Sink receives one event per matching line. Returning false stops the
// scan of this input.
type Sink func(Event) bool

// Scan runs the matcher over every line of data. Each input gets its own
// independent scan; the matcher is shared read-only.
func Scan(data []byte, m pattern.Matcher, cfg Config, emit Sink) Outcome {
	var out Outcome

	if cfg.MaxCount == 0 {
		out.State = MaxReached
		return out
	}

	sc := scanner.New(data)
	for {
		line, ok := sc.Next()
		if !ok {
			break
		}
		lineBytes := line.Bytes(data)

		var spans []pattern.Span
		var matched bool
		switch {
		case cfg.Invert:
			matched = !m.Match(lineBytes)
		case cfg.OnlyMatching:
			spans = m.FindAll(lineBytes)
			matched = len(spans) > 0
		default:
			matched = m.Match(lineBytes)
		}
		if !matched {
			continue
		}

		out.Matched = true
		out.MatchCount++

		if emit != nil {
			out.Emitted++
			if !emit(Event{Line: line, Spans: spans}) {
				out.State = Stopped
				return out
			}
		}

		if cfg.MaxCount > 0 && out.MatchCount >= uint64(cfg.MaxCount) {
			out.State = MaxReached
			return out
		}
	}

	out.State = Exhausted
	return out
}
