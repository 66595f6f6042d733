// Package source presents each input as an immutable, randomly-addressable
// byte range.
//
// File inputs are memory-mapped where the platform supports it; streams
// (standard input, pipes) are read fully into an owned buffer. Either way
// the caller sees the same contract: Bytes returns a read-only view that
// stays valid until Close, and opening is the only fallible step.
package source

import (
	"fmt"
	"io"
	"os"
)

// StdinName is the identifier used for the standard-input source in
// output records and error reports.
const StdinName = "(standard input)"

// Source is one input's contents. It must not be mutated, and it must
// outlive every line or match view derived from it.
type Source struct {
	data   []byte
	name   string
	mapped bool
}

// Bytes returns the full contents as a read-only slice.
func (s *Source) Bytes() []byte { return s.data }

// Len returns the content length in bytes.
func (s *Source) Len() int { return len(s.data) }

// Name returns the identifier the source was opened under.
func (s *Source) Name() string { return s.name }

// Close releases the mapping, if any. Views into Bytes must not be used
// afterwards.
func (s *Source) Close() error {
	if !s.mapped {
		return nil
	}
	data := s.data
	s.data = nil
	s.mapped = false
	if err := unmap(data); err != nil {
		return fmt.Errorf("unmap %s: %w", s.name, err)
	}
	return nil
}

// OpenFile opens a file-backed source. The length is fixed at the size
// observed here; a directory is refused.
func OpenFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}

	size := info.Size()
	if size == 0 {
		// Mapping a zero-length file is invalid; an empty view needs no
		// backing.
		return &Source{name: path}, nil
	}

	data, mapped, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Source{data: data, name: path, mapped: mapped}, nil
}

// FromReader materializes a stream-backed source, reading r to EOF.
func FromReader(name string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return &Source{data: data, name: name}, nil
}

// readFull reads exactly size bytes from the start of f. Shared by the
// platform backends when a mapping is unavailable.
func readFull(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}
