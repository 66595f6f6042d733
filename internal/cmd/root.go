// Package cmd wires the command-line surface to the search pipeline.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/grit/internal/config"
	"github.com/harrison/grit/internal/logger"
	"github.com/harrison/grit/internal/pattern"
	"github.com/harrison/grit/internal/search"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ExitError carries a non-zero process exit status out of cobra's error
// path without any message of its own.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command and returns the process exit status:
// 0 for at least one match, 1 for none, 2 for configuration or I/O errors.
func Execute() int {
	root := NewRootCommand()
	err := root.Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "grit: %v\n", err)
	return 2
}

// NewRootCommand creates the root grit command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grit [flags] PATTERN [PATH ...]",
		Short: "Search inputs for lines matching a pattern",
		Long: `Grit searches the named input files (or standard input when none are
given, or when a path is "-") for lines matching a pattern, and prints
each matching line.

Patterns are regular expressions unless --fixed-strings interprets them
literally. Several patterns may be given with repeated -e flags; a line
matches when any of them does.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}

	// Register --help without a shorthand before cobra claims -h, so the
	// grep-compatible -h (no-filename) stays available.
	cmd.Flags().Bool("help", false, "help for grit")

	cmd.Flags().BoolP("ignore-case", "i", false, "Ignore case distinctions in patterns and input")
	cmd.Flags().BoolP("invert-match", "v", false, "Select non-matching lines")
	cmd.Flags().BoolP("count", "c", false, "Print only a count of matching lines per input")
	cmd.Flags().BoolP("line-number", "n", false, "Prefix each line with its line number")
	cmd.Flags().BoolP("files-with-matches", "l", false, "Print only names of inputs with matches")
	cmd.Flags().BoolP("files-without-match", "L", false, "Print only names of inputs without matches")
	cmd.Flags().BoolP("no-filename", "h", false, "Suppress the filename prefix")
	cmd.Flags().BoolP("with-filename", "H", false, "Print the filename for each match")
	cmd.Flags().BoolP("only-matching", "o", false, "Print only the matched parts of lines")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress all output; exit status signals the result")
	cmd.Flags().Bool("silent", false, "Synonym for --quiet")
	cmd.Flags().BoolP("recursive", "r", false, "Search directories recursively")
	cmd.Flags().BoolP("fixed-strings", "F", false, "Interpret patterns as literal strings")
	cmd.Flags().BoolP("word-regexp", "w", false, "Match whole words only")
	cmd.Flags().BoolP("line-regexp", "x", false, "Match whole lines only")
	cmd.Flags().BoolP("byte-offset", "b", false, "Prefix each record with its byte offset")
	cmd.Flags().Int64P("max-count", "m", -1, "Stop scanning an input after NUM matching lines")
	cmd.Flags().StringArrayP("regexp", "e", nil, "Use PATTERN as a pattern; may be repeated")
	cmd.Flags().IntP("jobs", "j", 0, "Number of inputs scanned concurrently (0 = auto)")

	return cmd
}

// runSearch maps the parsed flags onto the pipeline and converts its exit
// status back into cobra's error channel.
func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	patterns, _ := cmd.Flags().GetStringArray("regexp")
	if len(patterns) == 0 {
		if len(args) == 0 {
			return fmt.Errorf("no pattern specified")
		}
		patterns = []string{args[0]}
		args = args[1:]
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	matcher, err := pattern.Compile(patterns, pattern.Modifiers{
		IgnoreCase:   opts.IgnoreCase,
		FixedStrings: opts.FixedStrings,
		WordRegexp:   opts.WordRegexp,
		LineRegexp:   opts.LineRegexp,
	})
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), "grit")
	runner := search.New(opts, matcher, log, cmd.OutOrStdout(), cmd.InOrStdin())

	code := runner.Run(cmd.Context(), paths)
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}

// optionsFromFlags builds and validates the option record.
func optionsFromFlags(cmd *cobra.Command) (config.Options, error) {
	flags := cmd.Flags()
	opts := config.Default()

	opts.IgnoreCase, _ = flags.GetBool("ignore-case")
	opts.InvertMatch, _ = flags.GetBool("invert-match")
	opts.Count, _ = flags.GetBool("count")
	opts.LineNumber, _ = flags.GetBool("line-number")
	opts.FilesWithMatches, _ = flags.GetBool("files-with-matches")
	opts.FilesWithoutMatch, _ = flags.GetBool("files-without-match")
	opts.NoFilename, _ = flags.GetBool("no-filename")
	opts.WithFilename, _ = flags.GetBool("with-filename")
	opts.OnlyMatching, _ = flags.GetBool("only-matching")
	opts.Recursive, _ = flags.GetBool("recursive")
	opts.FixedStrings, _ = flags.GetBool("fixed-strings")
	opts.WordRegexp, _ = flags.GetBool("word-regexp")
	opts.LineRegexp, _ = flags.GetBool("line-regexp")
	opts.ByteOffset, _ = flags.GetBool("byte-offset")
	opts.MaxCount, _ = flags.GetInt64("max-count")
	opts.Jobs, _ = flags.GetInt("jobs")

	quiet, _ := flags.GetBool("quiet")
	silent, _ := flags.GetBool("silent")
	opts.Quiet = quiet || silent

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
