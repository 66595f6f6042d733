package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "grit")

	l.Errorf("%s: no such file", "missing.txt")

	want := "grit: missing.txt: no such file\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNilWriter(t *testing.T) {
	l := New(nil, "grit")
	// Must not panic.
	l.Errorf("dropped")
	l.Warnf("dropped")
}

func TestNoColorForBuffer(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "grit")

	l.Warnf("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-TTY writer got ANSI escapes: %q", buf.String())
	}
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "grit")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Errorf("input failed")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for _, line := range lines {
		if line != "grit: input failed" {
			t.Errorf("interleaved line: %q", line)
		}
	}
}
