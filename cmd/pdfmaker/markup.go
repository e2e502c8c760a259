package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/poetrynook/pdfmaker/internal/catalog"
)

// runMarkup prints the intermediate markup of one manifest without
// rendering it.
func runMarkup(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseMarkupFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return fmt.Errorf("%w: usage: pdfmaker markup <manifest>", ErrNoManifest)
	}

	cfg, err := loadSettings(flags, env, nil)
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

	m, err := catalog.LoadManifest(paths[0])
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

	resolved, err := m.Resolve(ctx, src)
	if err != nil {
		return withHint(err, cfg)
	}
	for _, id := range resolved.Skipped {
		log.Warn("poem not in catalog", zap.String("manifest", m.Path), zap.Int64("id", id))
	}

	doc, err := compiler.Markup(resolved.Book)
	if err != nil {
		return err
	}
	fmt.Fprint(env.Stdout, doc)
	return nil
}
