package main

import (
	"context"
	"fmt"

	"github.com/poetrynook/pdfmaker/internal/catalog"
	"github.com/poetrynook/pdfmaker/internal/yamlutil"
)

// runCatalog dispatches the catalog subcommands.
func runCatalog(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printCatalogUsage(env.Stderr)
		return fmt.Errorf("%w: missing catalog subcommand", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "import":
		return runCatalogImport(ctx, rest, env)
	case "poets":
		return runCatalogPoets(ctx, rest, env)
	case "export":
		return runCatalogExport(ctx, rest, env)
	case "-h", "--help", "help":
		printCatalogUsage(env.Stdout)
		return nil
	default:
		printCatalogUsage(env.Stderr)
		return fmt.Errorf("%w: catalog %s", ErrUnknownCommand, sub)
	}
}

// openCatalogFor parses flags, checks the number of positional args,
// loads settings and opens the catalog.
func openCatalogFor(ctx context.Context, args []string, env *Environment, minArgs, maxArgs int, usage string, mustExist bool) (*catalog.Catalog, *catalogFlags, []string, error) {
	flags, rest, err := parseCatalogFlags(args, env.Stdout)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(rest) < minArgs || len(rest) > maxArgs {
		return nil, nil, nil, fmt.Errorf("%w: usage: %s", ErrUsage, usage)
	}
	cfg, err := loadSettings(&flags.common, env, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	cat, err := openCatalog(ctx, cfg, true, mustExist)
	if err != nil {
		return nil, nil, nil, err
	}
	return cat, flags, rest, nil
}

// runCatalogImport loads a YAML dump into the catalog, creating it if needed.
func runCatalogImport(ctx context.Context, args []string, env *Environment) error {
	cat, flags, rest, err := openCatalogFor(ctx, args, env, 1, 1, "pdfmaker catalog import <dump.yaml>", false)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	dump, err := catalog.LoadDump(rest[0])
	if err != nil {
		return err
	}
	n, err := cat.Import(ctx, dump)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Imported %d poet(s), %d poem(s)\n", n.Poets, n.Poems)
	}
	return nil
}

// runCatalogPoets lists poets whose name contains the optional filter.
func runCatalogPoets(ctx context.Context, args []string, env *Environment) error {
	cat, flags, rest, err := openCatalogFor(ctx, args, env, 0, 1, "pdfmaker catalog poets [filter]", true)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()
	var filter string
	if len(rest) == 1 {
		filter = rest[0]
	}

	poets, err := cat.Poets(ctx, filter)
	if err != nil {
		return err
	}

	if flags.yaml {
		data, err := yamlutil.Marshal(poets)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}
	for _, p := range poets {
		fmt.Fprintf(env.Stdout, "%6d  %s%s\n", p.ID, p.Name, lifeSpan(p))
	}
	return nil
}

// runCatalogExport prints the whole catalog in the import format.
func runCatalogExport(ctx context.Context, args []string, env *Environment) error {
	cat, _, _, err := openCatalogFor(ctx, args, env, 0, 0, "pdfmaker catalog export", true)
	if err != nil {
		return err
	}
	defer func() { _ = cat.Close() }()

	dump, err := cat.Export(ctx)
	if err != nil {
		return err
	}
	data, err := yamlutil.Marshal(dump)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

// lifeSpan formats " (birth - death)" when either date is known.
func lifeSpan(p catalog.Poet) string {
	if p.Birth == "" && p.Death == "" {
		return ""
	}
	return fmt.Sprintf(" (%s - %s)", p.Birth, p.Death)
}
