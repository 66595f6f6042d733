// Package config defines the validated option set that drives a search run.
//
// An Options value is built once by the CLI layer, validated, and then
// shared read-only by every stage of the pipeline.
package config

import "fmt"

// Options holds the recognized search modifiers and output modes.
// The zero value is not ready to use; start from Default.
type Options struct {
	// Pattern modifiers
	IgnoreCase   bool
	FixedStrings bool
	WordRegexp   bool
	LineRegexp   bool

	// Selection
	InvertMatch bool
	MaxCount    int64 // matching-line cutoff per input; -1 means unlimited

	// Output modes
	Count             bool
	FilesWithMatches  bool
	FilesWithoutMatch bool
	OnlyMatching      bool
	Quiet             bool

	// Record augmentation
	LineNumber   bool
	ByteOffset   bool
	NoFilename   bool
	WithFilename bool

	// Input handling
	Recursive bool
	Jobs      int // concurrent input scans; 0 means GOMAXPROCS
}

// Default returns the options for a bare invocation with no flags set.
func Default() Options {
	return Options{MaxCount: -1}
}

// Limited reports whether a max-count cutoff is configured.
func (o *Options) Limited() bool {
	return o.MaxCount >= 0
}

// Validate checks for flag combinations that are configuration errors.
// A validation failure aborts the run before any input is scanned.
func (o *Options) Validate() error {
	if o.FilesWithMatches && o.FilesWithoutMatch {
		return fmt.Errorf("files-with-matches and files-without-match are mutually exclusive")
	}
	if o.MaxCount < -1 {
		return fmt.Errorf("invalid max-count %d: must not be negative", o.MaxCount)
	}
	if o.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d: must not be negative", o.Jobs)
	}
	return nil
}
