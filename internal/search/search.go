// Package search drives the full pipeline: input expansion, per-input
// scanning on a bounded worker pool, and order-preserving emission.
//
// Inputs are independent, so they are scanned concurrently; each worker
// renders into its own buffer and a single collector emits the buffers in
// original input order, keeping output deterministic regardless of
// completion order. The only shared state is the run-wide Status.
package search

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/grit/internal/config"
	"github.com/harrison/grit/internal/engine"
	"github.com/harrison/grit/internal/logger"
	"github.com/harrison/grit/internal/output"
	"github.com/harrison/grit/internal/pattern"
	"github.com/harrison/grit/internal/source"
	"github.com/harrison/grit/internal/walker"
)

// errStopEarly cancels sibling scans once quiet mode has its answer.
var errStopEarly = errors.New("match found, stopping early")

// Runner executes one search invocation.
type Runner struct {
	opts    config.Options
	matcher pattern.Matcher
	log     *logger.Logger
	stdout  io.Writer
	stdin   io.Reader
}

// New assembles a runner. The matcher must already be compiled; the
// options must already be validated.
func New(opts config.Options, m pattern.Matcher, log *logger.Logger, stdout io.Writer, stdin io.Reader) *Runner {
	return &Runner{opts: opts, matcher: m, log: log, stdout: stdout, stdin: stdin}
}

// inputResult is one worker's rendered output and outcome.
type inputResult struct {
	buf     bytes.Buffer
	outcome engine.Outcome
	err     error
}

// Run expands paths, scans every input and writes the formatted results.
// It returns the process exit status: 0 for at least one match, 1 for
// none, 2 when no match was found and an error occurred.
func (r *Runner) Run(ctx context.Context, paths []string) int {
	var status output.Status

	expanded := walker.Expand(paths, r.opts.Recursive)
	for _, err := range expanded.Errors {
		r.log.Errorf("%v", err)
		status.RecordError()
	}

	inputs := expanded.Inputs
	if len(inputs) == 0 {
		return status.ExitCode()
	}

	printCfg := output.Config{
		ShowFilename: r.showFilename(len(inputs)),
		LineNumber:   r.opts.LineNumber,
		ByteOffset:   r.opts.ByteOffset,
	}

	results := make([]inputResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.jobs(), len(inputs)))
	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			return r.scanInput(in, printCfg, &results[i])
		})
	}
	// errStopEarly is the quiet-mode short circuit, not a failure.
	if err := g.Wait(); err != nil && !errors.Is(err, errStopEarly) {
		r.log.Errorf("%v", err)
		status.RecordError()
	}

	// Emit per-input buffers in original input order.
	for i := range results {
		res := &results[i]
		if res.err != nil {
			r.log.Errorf("%v", res.err)
			status.RecordError()
			continue
		}
		if res.buf.Len() > 0 {
			r.stdout.Write(res.buf.Bytes())
		}
		status.RecordMatch(res.outcome.Matched)
	}

	return status.ExitCode()
}

// scanInput opens, scans and renders one input into res.
func (r *Runner) scanInput(in walker.Input, printCfg output.Config, res *inputResult) error {
	var src *source.Source
	var err error
	if in.Stdin {
		src, err = source.FromReader(source.StdinName, r.stdin)
	} else {
		src, err = source.OpenFile(in.Path)
	}
	if err != nil {
		res.err = err
		return nil
	}
	defer src.Close()

	p := output.NewPrinter(&res.buf, printCfg, src.Name())

	var sink engine.Sink
	if !r.suppressLines() {
		data := src.Bytes()
		sink = func(ev engine.Event) bool {
			p.Record(data, ev)
			return true
		}
	}

	res.outcome = engine.Scan(src.Bytes(), r.matcher, engine.Config{
		Invert:       r.opts.InvertMatch,
		OnlyMatching: r.opts.OnlyMatching && !r.opts.InvertMatch,
		MaxCount:     r.effectiveMaxCount(),
	}, sink)

	r.finalize(p, res.outcome)

	if r.opts.Quiet && res.outcome.Matched {
		return errStopEarly
	}
	return nil
}

// finalize renders the per-input trailer for the aggregate modes.
func (r *Runner) finalize(p *output.Printer, out engine.Outcome) {
	switch {
	case r.opts.Quiet:
		// No output at all.
	case r.opts.FilesWithMatches:
		if out.Matched {
			p.Name()
		}
	case r.opts.FilesWithoutMatch:
		if !out.Matched {
			p.Name()
		}
	case r.opts.Count:
		p.Count(out.MatchCount)
	}
}

// suppressLines reports whether per-line records are suppressed entirely.
func (r *Runner) suppressLines() bool {
	return r.opts.Quiet || r.opts.Count || r.opts.FilesWithMatches || r.opts.FilesWithoutMatch
}

// effectiveMaxCount tightens the cutoff to one matching line for the
// modes that only need to know whether a match exists.
func (r *Runner) effectiveMaxCount() int64 {
	firstOnly := r.opts.Quiet || r.opts.FilesWithMatches || r.opts.FilesWithoutMatch
	if firstOnly && (!r.opts.Limited() || r.opts.MaxCount > 1) {
		return 1
	}
	return r.opts.MaxCount
}

// showFilename decides the prefix rule: forced on by with-filename,
// otherwise on when several inputs are in play (or recursion could make
// it so) and not explicitly suppressed.
func (r *Runner) showFilename(inputCount int) bool {
	if r.opts.WithFilename {
		return true
	}
	if r.opts.NoFilename {
		return false
	}
	return inputCount > 1 || r.opts.Recursive
}

func (r *Runner) jobs() int {
	if r.opts.Jobs > 0 {
		return r.opts.Jobs
	}
	return runtime.GOMAXPROCS(0)
}
