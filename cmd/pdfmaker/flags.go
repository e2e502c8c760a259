package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/poetrynook/pdfmaker/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	root      string
	catalog   string
	logLevel  string
	logFormat string
	quiet     bool
	verbose   bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common  commonFlags
	page    pageFlags
	workers int
}

// catalogFlags holds flags for the catalog subcommands.
type catalogFlags struct {
	common commonFlags
	yaml   bool // poets: print YAML instead of a list
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.root, "root", "", "storage root books are written under")
	fs.StringVar(&f.catalog, "catalog", "", "catalog database file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show details and debug logs")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, a5, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w on --help.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse and marks errors as usage errors. --help is passed
// through unchanged.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string, w io.Writer) (*compileFlags, []string, error) {
	f := &compileFlags{}
	fs := newFlagSet("compile", w, printCompileUsage)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel compilations (0 = config or GOMAXPROCS)")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseMarkupFlags parses markup command flags and returns positional args.
func parseMarkupFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet("markup", w, printMarkupUsage)
	addCommonFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCatalogFlags parses catalog subcommand flags and returns positional args.
func parseCatalogFlags(args []string, w io.Writer) (*catalogFlags, []string, error) {
	f := &catalogFlags{}
	fs := newFlagSet("catalog", w, printCatalogUsage)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.yaml, "yaml", false, "print poets as YAML")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// mergeCommonFlags merges CLI flags into config. CLI values override config values.
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	if f.root != "" {
		cfg.Storage.Root = f.root
	}
	if f.catalog != "" {
		cfg.Catalog.Path = f.catalog
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	switch {
	case f.logLevel != "":
		cfg.Log.Level = f.logLevel
	case f.verbose:
		cfg.Log.Level = "debug"
	case f.quiet:
		cfg.Log.Level = "error"
	}
}

// mergePageFlags merges page flags into config.
func mergePageFlags(f *pageFlags, cfg *config.Config) {
	if f.size != "" {
		cfg.Page.Size = f.size
	}
	if f.orientation != "" {
		cfg.Page.Orientation = f.orientation
	}
}
