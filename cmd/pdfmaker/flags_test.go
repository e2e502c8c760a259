package main

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/poetrynook/pdfmaker/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseCompileFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseCompileFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	f, args, err := parseCompileFlags([]string{
		"-w", "3", "--config", "book", "--root", "/r", "--catalog", "c.db",
		"-p", "letter", "--orientation", "landscape", "--log-format", "json", "-q",
		"a.yaml", "b.yaml",
	}, &out)
	if err != nil {
		t.Fatalf("parseCompileFlags: %v", err)
	}

	if f.workers != 3 || f.common.config != "book" || f.common.root != "/r" || f.common.catalog != "c.db" {
		t.Errorf("flags = %+v", f)
	}
	if f.page.size != "letter" || f.page.orientation != "landscape" {
		t.Errorf("page = %+v", f.page)
	}
	if f.common.logFormat != "json" || !f.common.quiet {
		t.Errorf("common = %+v", f.common)
	}
	if !slices.Equal(args, []string{"a.yaml", "b.yaml"}) {
		t.Errorf("args = %q", args)
	}
}

func TestParseCompileFlags_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseCompileFlags([]string{"--nope"}, &bytes.Buffer{})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		_, _, err := parseCompileFlags([]string{"-h"}, &out)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want ErrHelp", err)
		}
		if !strings.Contains(out.String(), "Usage: pdfmaker compile") {
			t.Errorf("usage not printed: %q", out.String())
		}
	})
}

func TestParseCatalogFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseCatalogFlags([]string{"--yaml", "--catalog", "c.db", "ada"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseCatalogFlags: %v", err)
	}
	if !f.yaml || f.common.catalog != "c.db" {
		t.Errorf("flags = %+v", f)
	}
	if !slices.Equal(args, []string{"ada"}) {
		t.Errorf("args = %q", args)
	}
}

// ---------------------------------------------------------------------------
// TestMergeCommonFlags - CLI values override config values
// ---------------------------------------------------------------------------

func TestMergeCommonFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantLevel string
	}{
		{"no flags", commonFlags{}, "info"},
		{"verbose", commonFlags{verbose: true}, "debug"},
		{"quiet", commonFlags{quiet: true}, "error"},
		{"explicit level wins", commonFlags{verbose: true, logLevel: "warn"}, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			mergeCommonFlags(&tt.flags, cfg)
			if cfg.Log.Level != tt.wantLevel {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, tt.wantLevel)
			}
		})
	}

	t.Run("paths", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeCommonFlags(&commonFlags{root: "/r", catalog: "c.db", logFormat: "json"}, cfg)
		if cfg.Storage.Root != "/r" || cfg.Catalog.Path != "c.db" || cfg.Log.Format != "json" {
			t.Errorf("cfg = %+v", cfg)
		}
	})
}

func TestMergePageFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergePageFlags(&pageFlags{orientation: "landscape"}, cfg)

	if cfg.Page.Size != "a4" {
		t.Errorf("Page.Size = %q, want the default kept", cfg.Page.Size)
	}
	if cfg.Page.Orientation != "landscape" {
		t.Errorf("Page.Orientation = %q, want landscape", cfg.Page.Orientation)
	}
}
