// Package runner discovers Java analysis units and checks them in
// parallel. Units are independent: each gets its own parser, scope
// stack, and helper memo, and a panicking unit is contained and
// reported without contaminating the rest of the run.
package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/unbound-force/vouch/internal/assertion"
	"github.com/unbound-force/vouch/internal/check"
	"github.com/unbound-force/vouch/internal/javasrc"
)

// Options configures a run.
type Options struct {
	// CustomAssertions is the raw Type#methodOrPrefix* matcher
	// configuration (see assertion.CustomMatchers).
	CustomAssertions string

	// Include restricts analysis to files matching any of these
	// glob patterns (slash-separated). Empty means all .java files.
	Include []string

	// Exclude drops files matching any of these glob patterns.
	Exclude []string

	// Jobs bounds the number of concurrently analyzed units.
	// Zero means one worker per CPU.
	Jobs int

	// Logger receives warnings (malformed matcher entries, skipped
	// units). Nil suppresses them.
	Logger *charmlog.Logger
}

// UnitError records a unit that could not be analyzed.
type UnitError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`

	// Message is the error text, kept separate so unit errors
	// serialize cleanly.
	Message string `json:"message"`
}

// Result aggregates one run.
type Result struct {
	Findings []check.Finding
	Units    int
	Errors   []UnitError
}

// Run analyzes every Java file reachable from the given paths.
// It fails only on setup problems (bad patterns, unreadable roots);
// per-unit failures are collected in Result.Errors.
func Run(paths []string, opts Options) (*Result, error) {
	include, err := compileGlobs(opts.Include)
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}
	exclude, err := compileGlobs(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	files, err := discover(paths, include, exclude)
	if err != nil {
		return nil, err
	}

	// Compiled once, shared read-only across all workers.
	custom := assertion.NewCustomMatchers(opts.CustomAssertions, opts.Logger).Set()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	res := &Result{Units: len(files)}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(jobs)
	for _, path := range files {
		g.Go(func() error {
			findings, err := analyzeUnit(path, custom)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Errors = append(res.Errors, UnitError{
					Path:    path,
					Err:     err,
					Message: err.Error(),
				})
				if opts.Logger != nil {
					opts.Logger.Warn("skipping unit", "path", path, "err", err)
				}
				return nil
			}
			res.Findings = append(res.Findings, findings...)
			return nil
		})
	}
	// workers never return errors; the group only bounds parallelism
	_ = g.Wait()

	sortFindings(res.Findings)
	sort.Slice(res.Errors, func(i, j int) bool {
		return res.Errors[i].Path < res.Errors[j].Path
	})
	return res, nil
}

// analyzeUnit parses and checks one file behind a recover boundary.
func analyzeUnit(path string, custom assertion.MatcherSet) (findings []check.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("internal error analyzing %s: %v", path, r)
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := javasrc.NewParser()
	defer p.Close()

	unit, err := p.Parse(path, src)
	if err != nil {
		return nil, err
	}
	return check.Run(unit, custom), nil
}

// discover walks the given roots for .java files passing the
// include/exclude filters. A root that is itself a file bypasses the
// include filter but still honors exclude.
func discover(paths []string, include, exclude []glob.Glob) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !matchesAny(exclude, root) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
				return nil
			}
			if len(include) > 0 && !matchesAny(include, path) {
				return nil
			}
			if matchesAny(exclude, path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range globs {
		if g.Match(slashed) {
			return true
		}
	}
	return false
}

// sortFindings orders findings by file, line, column for
// deterministic output regardless of worker scheduling.
func sortFindings(findings []check.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}
