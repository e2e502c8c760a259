package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfmaker <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compile    Compile book manifests to PDF")
	fmt.Fprintln(w, "  markup     Print the intermediate markup of a manifest")
	fmt.Fprintln(w, "  catalog    Import, list and export the poem catalog")
	fmt.Fprintln(w, "  doctor     Check fonts, storage and catalog")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfmaker help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Settings:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Storage root books are written under")
	fmt.Fprintln(w, "      --catalog <file>      Catalog database file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show details and debug logs")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfmaker compile <manifest>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile book manifests to PDF files under <root>/pdf/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  manifest    YAML book manifest; poems are inline or catalog ids")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compilation:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel compilations (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, a5, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printMarkupUsage prints usage for the markup command.
func printMarkupUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfmaker markup <manifest> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the intermediate markup a manifest compiles from.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCatalogUsage prints usage for the catalog command.
func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfmaker catalog <subcommand> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  import <dump.yaml>    Add or replace poets and poems")
	fmt.Fprintln(w, "  poets [filter]        List poets with poems whose name contains filter")
	fmt.Fprintln(w, "  export                Print the catalog in the import format")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Poets:")
	fmt.Fprintln(w, "      --yaml                Print poets as YAML")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfmaker doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check fonts, the storage root and the catalog.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "compile":
		printCompileUsage(env.Stdout)
	case "markup":
		printMarkupUsage(env.Stdout)
	case "catalog":
		printCatalogUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdfmaker version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdfmaker help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
