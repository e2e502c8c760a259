package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/poetrynook/pdfmaker"
	"github.com/poetrynook/pdfmaker/internal/catalog"
	"github.com/poetrynook/pdfmaker/internal/config"
	"github.com/poetrynook/pdfmaker/internal/fileutil"
	"github.com/poetrynook/pdfmaker/internal/hints"
	"github.com/poetrynook/pdfmaker/internal/logging"
)

// ErrNoCatalogPath is returned by catalog commands when no database is configured.
var ErrNoCatalogPath = errors.New("no catalog configured")

var pageSizes = []string{
	pdfmaker.PageSizeA4,
	pdfmaker.PageSizeA5,
	pdfmaker.PageSizeLetter,
	pdfmaker.PageSizeLegal,
}

// loadSettings layers the config file, environment variables and flags
// over the environment's base config, then validates the result.
// merge applies command-specific flags; it may be nil.
func loadSettings(f *commonFlags, env *Environment, merge func(*config.Config)) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchedPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	} else {
		base := *env.Config
		cfg = &base
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(f, cfg)
	if merge != nil {
		merge(cfg)
	}

	if err := cfg.Validate(); err != nil {
		hint := ""
		if !slices.Contains(pageSizes, strings.ToLower(cfg.Page.Size)) {
			hint = hints.ForPageSize(pageSizes)
		}
		return nil, fmt.Errorf("%w%s", err, hint)
	}
	return cfg, nil
}

// newLogger builds the command's logger, writing to w.
func newLogger(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	log, err := logging.New(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return log, nil
}

// newCompiler creates a compiler from the merged configuration.
func newCompiler(cfg *config.Config, log *zap.Logger, env *Environment) (*pdfmaker.Compiler, error) {
	m := cfg.Page.Margins
	c, err := pdfmaker.NewCompiler(
		pdfmaker.WithLogger(log),
		pdfmaker.WithStorageRoot(cfg.Storage.Root),
		pdfmaker.WithPage(pdfmaker.PageSettings{
			Size:        cfg.Page.Size,
			Orientation: cfg.Page.Orientation,
			Top:         m.Top,
			Bottom:      m.Bottom,
			Left:        m.Left,
			Right:       m.Right,
		}),
		pdfmaker.WithFonts(pdfmaker.FontSettings{
			Dirs: cfg.Fonts.Dirs,
			Main: cfg.Fonts.Main,
			Code: cfg.Fonts.Code,
		}),
		pdfmaker.WithFooter(pdfmaker.Footer{
			Lines:       cfg.Footer.Lines,
			PageNumbers: cfg.Footer.PageNumbers,
		}),
		pdfmaker.WithContents(pdfmaker.Contents{
			Title:   cfg.Contents.Title,
			Section: cfg.Contents.Section,
		}),
		pdfmaker.WithCover(pdfmaker.Cover{
			Presenter:    cfg.Cover.Presenter,
			DefaultTitle: cfg.Cover.DefaultTitle,
		}),
		pdfmaker.WithClock(env.Now),
	)
	if err != nil {
		return nil, withHint(err, cfg)
	}
	return c, nil
}

// openCatalog opens and migrates the configured catalog. With mustExist,
// a missing database file is an error instead of being created.
// Returns nil without error when no catalog is configured and required is false.
func openCatalog(ctx context.Context, cfg *config.Config, required, mustExist bool) (*catalog.Catalog, error) {
	path := cfg.Catalog.Path
	if path == "" {
		if required {
			return nil, fmt.Errorf("%w%s", ErrNoCatalogPath, hints.ForCatalog(""))
		}
		return nil, nil
	}
	if mustExist && !fileutil.FileExists(path) {
		return nil, fmt.Errorf("%w: %s: %w%s", catalog.ErrOpen, path, os.ErrNotExist, hints.ForCatalog(path))
	}

	cat, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForCatalog(path))
	}
	if err := cat.Migrate(ctx); err != nil {
		_ = cat.Close()
		return nil, err
	}
	return cat, nil
}

// withHint appends the hint matching err's class, if any.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, pdfmaker.ErrFontUnavailable):
		hint = hints.ForFontUnavailable(cfg.Fonts.Dirs)
	case errors.Is(err, pdfmaker.ErrInvalidFolder):
		// The folder comes from the manifest, not the storage setup.
	case errors.Is(err, pdfmaker.ErrNoStorageRoot):
		hint = hints.ForStorage("")
	case errors.Is(err, pdfmaker.ErrMaterialize):
		hint = hints.ForStorage(cfg.Storage.Root)
	case errors.Is(err, catalog.ErrNoCatalog):
		hint = hints.ForCatalog(cfg.Catalog.Path)
	case errors.Is(err, pdfmaker.ErrInvalidPageSize):
		hint = hints.ForPageSize(pageSizes)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
