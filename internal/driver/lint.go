// Package driver runs the linter over real files: target discovery,
// the parallel lint pipeline, the fix loop, baseline snapshots and
// watch mode. Each file is parsed and linted on its own working set,
// so workers share nothing but the rule registry.
package driver

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"nulint/internal/ast"
	"nulint/internal/fix"
	"nulint/internal/lint"
	"nulint/internal/observ"
	"nulint/internal/parser"
	"nulint/internal/rules"
	"nulint/internal/source"
)

// Options configures a driver run.
type Options struct {
	// Config is the effective lint configuration; nil means defaults.
	Config *lint.Config
	// Jobs bounds the worker pool; values <= 0 use GOMAXPROCS.
	Jobs int
	// Warn receives runner warnings (a line per panicking rule).
	// Nil keeps the runner's default of stderr.
	Warn io.Writer
	// Progress, when set, is invoked after each file finishes, with
	// that file's result. It is called from worker goroutines.
	Progress func(done, total int, fr *FileResult)
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path       string
	Set        *source.FileSet
	File       *source.File
	Violations []lint.Violation
	Timing     observ.Report
	Err        error // load or run failure; other fields may be zero
}

// HasErrors reports whether the file failed to lint or produced any
// error-severity violation.
func (fr *FileResult) HasErrors() bool {
	return fr.Err != nil || lint.HasErrors(fr.Violations)
}

// Result aggregates a run over many files, in discovery order.
type Result struct {
	Files   []FileResult
	Elapsed time.Duration
}

// Count returns the total number of violations across all files.
func (r *Result) Count() int {
	n := 0
	for i := range r.Files {
		n += len(r.Files[i].Violations)
	}
	return n
}

// Totals sums violation counts by severity across all files.
func (r *Result) Totals() (errors, warnings, hints int) {
	for i := range r.Files {
		e, w, h := lint.CountBySeverity(r.Files[i].Violations)
		errors += e
		warnings += w
		hints += h
	}
	return errors, warnings, hints
}

// HasErrors reports whether any file failed or carries an
// error-severity violation.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].HasErrors() {
			return true
		}
	}
	return false
}

// LintPaths discovers *.nu files under the given arguments and lints
// them in parallel.
func LintPaths(ctx context.Context, args []string, opts Options) (*Result, error) {
	files, err := Discover(args...)
	if err != nil {
		return nil, err
	}
	return LintFiles(ctx, files, opts)
}

// LintFiles lints the given files in parallel over a bounded worker
// pool. Results land in per-index slots, so the output order matches
// the input regardless of scheduling. Per-file load failures are
// recorded in the result; the returned error reports cancellation
// only.
func LintFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	start := time.Now()
	reg := lint.MustRegistry(rules.All()...)
	results := make([]FileResult, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	var done atomic.Int64
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = lintOne(gctx, reg, path, nil, opts)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(files), &results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Result{Files: results, Elapsed: time.Since(start)}, err
	}
	return &Result{Files: results, Elapsed: time.Since(start)}, nil
}

// LintSource lints one in-memory buffer, for editor integrations and
// tests. The path only names the buffer; nothing is read from disk.
func LintSource(ctx context.Context, path string, content []byte, opts Options) FileResult {
	reg := lint.MustRegistry(rules.All()...)
	return lintOne(ctx, reg, path, content, opts)
}

// lintOne parses and lints a single file on a fresh working set. A nil
// content reads the file from disk.
func lintOne(ctx context.Context, reg *lint.Registry, path string, content []byte, opts Options) FileResult {
	tm := observ.NewTimer()
	ws := ast.NewWorkingSet(source.NewFileSet())

	read := tm.Begin("read")
	var file *source.File
	if content != nil {
		file = ws.Files.Get(ws.Files.Add(path, content, 0))
	} else {
		id, err := ws.Files.Load(path, 0)
		if err != nil {
			tm.End(read, "")
			return FileResult{Path: path, Err: err}
		}
		file = ws.Files.Get(id)
	}
	tm.End(read, "")

	parse := tm.Begin("parse")
	root := parser.New(ws, diskLoader(ws)).ParseFile(file)
	tm.End(parse, "")

	run := tm.Begin("lint")
	runner := lint.NewRunner(reg, opts.Config, rules.Groups)
	if opts.Warn != nil {
		runner.Warn = opts.Warn
	}
	vs, err := runner.Run(ctx, lint.NewContext(ws, root, file, opts.Config))
	tm.End(run, "")
	if err != nil {
		return FileResult{Path: path, Set: ws.Files, File: file, Err: err}
	}
	return FileResult{Path: path, Set: ws.Files, File: file, Violations: vs, Timing: tm.Report()}
}

// diskLoader resolves `use` and `source` targets relative to the
// referencing file and loads them into the working set as external
// files. The parser handles cycles; the loader only resolves paths.
func diskLoader(ws *ast.WorkingSet) parser.FileLoader {
	return func(from *source.File, path string) (*source.File, error) {
		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(filepath.Dir(from.Path), path)
		}
		if f, ok := ws.Files.GetByPath(resolved); ok {
			return f, nil
		}
		content, err := os.ReadFile(resolved) // #nosec G304 -- target named by the script under analysis
		if err != nil {
			return nil, err
		}
		id := ws.Files.Add(resolved, content, source.FileExternal)
		return ws.Files.Get(id), nil
	}
}

// Fixing re-lints between rounds because applying one fix can expose
// the next finding; the rule set settles in two or three rounds, so
// hitting this cap means the fixes are fighting each other.
const maxFixPasses = 8

// FixPreview is the before/after window of one applied fix.
type FixPreview struct {
	Rule        string
	Description string
	Before      string
	After       string
}

// FixedFile is the outcome of running the fix loop over one file.
type FixedFile struct {
	Path      string
	Content   []byte            // content after the final round
	Applied   []fix.AppliedFix  // fixes spliced in, across all rounds
	Previews  []FixPreview      // windows of the applied fixes
	Remaining []lint.Violation  // what still reports when fixing stops
	Set       *source.FileSet   // fileset of the final round, for rendering
	Passes    int
	Changed   bool
	Err       error
}

// FixOutcome aggregates a fix run.
type FixOutcome struct {
	Files   []FixedFile
	Elapsed time.Duration
}

// Changed reports whether any file was rewritten.
func (o *FixOutcome) Changed() bool {
	for i := range o.Files {
		if o.Files[i].Changed {
			return true
		}
	}
	return false
}

// FixFiles runs the fix loop over the given files in parallel. When
// write is set, changed files are rewritten in place with their
// original permission bits; otherwise the new content is only carried
// in the outcome, for dry runs.
func FixFiles(ctx context.Context, files []string, write bool, opts Options) (*FixOutcome, error) {
	start := time.Now()
	reg := lint.MustRegistry(rules.All()...)
	results := make([]FixedFile, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = fixOne(gctx, reg, path, write, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &FixOutcome{Files: results, Elapsed: time.Since(start)}, err
	}
	return &FixOutcome{Files: results, Elapsed: time.Since(start)}, nil
}

func fixOne(ctx context.Context, reg *lint.Registry, path string, write bool, opts Options) FixedFile {
	original, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return FixedFile{Path: path, Err: err}
	}

	out := FixedFile{Path: path, Content: original}
	engine := fix.NewEngine(reg)
	engine.Severity = lint.NewRunner(reg, opts.Config, rules.Groups).SeverityFor

	current := original
	for pass := 0; pass < maxFixPasses; pass++ {
		select {
		case <-ctx.Done():
			out.Err = ctx.Err()
			return out
		default:
		}

		fr := lintOne(ctx, reg, path, current, opts)
		if fr.Err != nil {
			out.Err = fr.Err
			return out
		}
		out.Passes = pass + 1

		res := engine.Apply(fr.File, fr.Violations)
		if !res.Changed() {
			out.Remaining = append(fr.Violations, res.Reports...)
			lint.SortViolations(out.Remaining)
			out.Set = fr.Set
			break
		}
		out.Previews = append(out.Previews, collectPreviews(fr.File, fr.Violations, res.Applied)...)
		out.Applied = append(out.Applied, res.Applied...)
		current = res.Content
	}

	out.Content = current
	out.Changed = !bytes.Equal(current, original)
	if write && out.Changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
		if writeErr := os.WriteFile(path, current, mode); writeErr != nil {
			out.Err = writeErr
		}
	}
	return out
}

// collectPreviews pairs the engine's applied fixes back with the
// violations that carried them and renders each one's window.
func collectPreviews(f *source.File, vs []lint.Violation, applied []fix.AppliedFix) []FixPreview {
	counts := make(map[string]int, len(applied))
	for _, a := range applied {
		counts[a.Rule+"\x00"+a.Description]++
	}
	var previews []FixPreview
	for i := range vs {
		v := &vs[i]
		if v.Fix == nil {
			continue
		}
		key := v.Rule + "\x00" + v.Fix.Description
		if counts[key] == 0 {
			continue
		}
		counts[key]--
		if before, after, ok := fix.Preview(f, v.Fix); ok {
			previews = append(previews, FixPreview{
				Rule:        v.Rule,
				Description: v.Fix.Description,
				Before:      before,
				After:       after,
			})
		}
	}
	return previews
}
