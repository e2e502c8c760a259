package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/poetrynook/pdfmaker"
	"github.com/poetrynook/pdfmaker/internal/catalog"
	"github.com/poetrynook/pdfmaker/internal/config"
)

// BookCompiler is the interface for the compilation service.
type BookCompiler interface {
	Compile(ctx context.Context, book pdfmaker.Book) (*pdfmaker.Result, error)
}

// Compile-time interface implementation check.
var _ BookCompiler = (*pdfmaker.Compiler)(nil)

var (
	failedLabel  = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow)
	createdLabel = color.New(color.FgGreen)
)

// CompileResult holds the outcome of a single manifest.
type CompileResult struct {
	Manifest string
	Path     string // Relative to the storage root
	Pages    int
	Warnings []string
	Skipped  []int64
	Err      error
	Duration time.Duration
}

// batchError reports failed compilations. It unwraps to every failure so
// exit codes can be derived with errors.Is.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d book(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error { return e.errs }

// runCompile compiles every manifest named on the command line.
func runCompile(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseCompileFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: usage: pdfmaker compile <manifest>...", ErrNoManifest)
	}

	cfg, err := loadSettings(&flags.common, env, func(c *config.Config) {
		mergePageFlags(&flags.page, c)
		if flags.workers > 0 {
			c.Workers = flags.workers
		}
	})
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	compiler, err := newCompiler(cfg, log, env)
	if err != nil {
		return err
	}

	cat, err := openCatalog(ctx, cfg, false, false)
	if err != nil {
		return err
	}
	var src catalog.Source
	if cat != nil {
		defer func() { _ = cat.Close() }()
		src = cat
	}

	workers := resolveWorkers(cfg.Workers, len(paths))
	log.Debug("compiling", zap.Int("manifests", len(paths)), zap.Int("workers", workers))

	results := compileBatch(ctx, compiler, src, paths, workers)
	for i := range results {
		if results[i].Err != nil {
			results[i].Err = withHint(results[i].Err, cfg)
		}
	}

	failed := printResults(results, cfg.Storage.Root, flags.common, env)
	if failed > 0 {
		errs := make([]error, 0, failed)
		for _, r := range results {
			if r.Err != nil {
				errs = append(errs, r.Err)
			}
		}
		return &batchError{failed: failed, total: len(results), errs: errs}
	}
	return nil
}

// validateWorkers checks the --workers flag.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers returns the number of parallel compilations: the
// configured count, or GOMAXPROCS, never more than there are jobs.
func resolveWorkers(configured, jobs int) int {
	n := configured
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > jobs {
		n = jobs
	}
	return max(n, 1)
}

// compileBatch compiles manifests concurrently. Results keep the order of
// paths; one failure does not stop the others.
func compileBatch(ctx context.Context, c BookCompiler, src catalog.Source, paths []string, workers int) []CompileResult {
	results := make([]CompileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = compileManifest(ctx, c, src, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// compileManifest loads, resolves and compiles one manifest.
func compileManifest(ctx context.Context, c BookCompiler, src catalog.Source, path string) (result CompileResult) {
	start := time.Now()
	result.Manifest = path
	defer func() { result.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	m, err := catalog.LoadManifest(path)
	if err != nil {
		result.Err = err
		return result
	}
	resolved, err := m.Resolve(ctx, src)
	if err != nil {
		result.Err = err
		return result
	}
	result.Skipped = resolved.Skipped

	res, err := c.Compile(ctx, resolved.Book)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = res.Path
	result.Pages = res.Pages
	result.Warnings = res.Warnings
	return result
}

// printResults writes one line per manifest and returns the failure count.
// Failures and warnings go to stderr even when quiet.
func printResults(results []CompileResult, root string, f commonFlags, env *Environment) int {
	var failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", failedLabel.Sprint("FAILED"), r.Manifest, r.Err)
			continue
		}

		for _, id := range r.Skipped {
			fmt.Fprintf(env.Stderr, "%s %s: poem %d is not in the catalog\n", warningLabel.Sprint("WARNING"), r.Manifest, id)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "%s %s: %s\n", warningLabel.Sprint("WARNING"), r.Manifest, w)
		}

		if f.quiet {
			continue
		}

		out := filepath.Join(root, filepath.FromSlash(r.Path))
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.Manifest, out, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", createdLabel.Sprint("Created"), out)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}
