// Package logger provides the diagnostics side channel for per-input
// failures.
//
// Every unreadable input, unrecognized directory and walk error is
// reported here, attributed to its originating identifier, while the
// match output stream stays clean. Output is colorized when the writer is
// a terminal; NO_COLOR and non-TTY writers disable it.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger writes attributed diagnostics to a single writer. Safe for
// concurrent use.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	tag      string
	warnC    *color.Color
	errC     *color.Color
	colorize bool
}

// New returns a logger that prefixes every message with tag (the program
// name, grep-style). If w is nil, messages are discarded.
func New(w io.Writer, tag string) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		w:        w,
		tag:      tag,
		warnC:    color.New(color.FgYellow),
		errC:     color.New(color.FgRed),
		colorize: isTerminal(w) && !color.NoColor,
	}
}

// isTerminal reports whether w is a TTY that can render colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Errorf reports a failure.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(l.errC, format, args...)
}

// Warnf reports a recoverable oddity.
func (l *Logger) Warnf(format string, args ...any) {
	l.write(l.warnC, format, args...)
}

func (l *Logger) write(c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	tag := l.tag
	if l.colorize {
		tag = c.Sprint(tag)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s: %s\n", tag, msg)
}
