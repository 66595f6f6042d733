// Package walker expands argument paths into the flat list of scannable
// inputs.
//
// Directories are only descended into when recursion is requested;
// handed a directory otherwise, the walker reports it as a non-fatal
// per-input error and moves on. A symbolic link named as an argument is
// followed; links to directories discovered during traversal are not,
// which guarantees termination in the presence of link cycles. Links to
// files are followed and scanned like regular files.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrIsDirectory marks a directory argument given without recursion.
var ErrIsDirectory = errors.New("is a directory")

// Input identifies one scannable input.
type Input struct {
	// Path is the filesystem path, empty for standard input.
	Path string
	// Stdin marks the standard-input pseudo-path "-".
	Stdin bool
}

// Result is the expansion of the argument paths. Errors are non-fatal and
// each names its originating path; the inputs that did expand are scanned
// regardless.
type Result struct {
	Inputs []Input
	Errors []error
}

// Expand resolves each argument into leaf inputs, preserving argument
// order. Recursive expansion is depth-first in lexicographic order.
func Expand(paths []string, recursive bool) *Result {
	res := &Result{}
	for _, p := range paths {
		if p == "-" {
			res.Inputs = append(res.Inputs, Input{Stdin: true})
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if !info.IsDir() {
			res.Inputs = append(res.Inputs, Input{Path: p})
			continue
		}
		if !recursive {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", p, ErrIsDirectory))
			continue
		}

		// WalkDir lstats its root, so a symlink named on the command line
		// would otherwise be treated like one discovered mid-walk and
		// skipped. An explicit argument is followed; only links found
		// during traversal are not.
		root := p
		if link, err := os.Lstat(p); err == nil && link.Mode()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(p)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("%s: %w", p, err))
				continue
			}
			root = resolved
		}
		res.walk(p, root)
	}
	return res
}

// walk collects the files under root, reporting them under name, the
// path as the caller gave it. WalkDir visits entries in lexical order
// and lstats them, so a directory behind a symlink discovered during
// traversal is seen as a plain symlink entry and never descended into.
func (r *Result) walk(name, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		shown := displayPath(name, root, path)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("%s: %w", shown, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				r.Errors = append(r.Errors, fmt.Errorf("%s: %w", shown, err))
				return nil
			}
			if target.IsDir() {
				return nil
			}
			r.Inputs = append(r.Inputs, Input{Path: shown})
			return nil
		}

		if d.Type().IsRegular() {
			r.Inputs = append(r.Inputs, Input{Path: shown})
		}
		return nil
	})
	if err != nil {
		r.Errors = append(r.Errors, fmt.Errorf("%s: %w", name, err))
	}
}

// displayPath maps a walked path back under the argument as given, so a
// resolved symlink root does not leak its target into the output.
func displayPath(name, root, path string) string {
	if name == root {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.Join(name, rel)
}
