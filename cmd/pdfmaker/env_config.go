package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/poetrynook/pdfmaker/internal/config"
	"github.com/poetrynook/pdfmaker/internal/hints"
)

const envPrefix = "PDFMAKER_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string   // PDFMAKER_CONFIG: config file name or path
	Root       string   // PDFMAKER_ROOT: storage root
	Catalog    string   // PDFMAKER_CATALOG: catalog database
	FontDirs   []string // PDFMAKER_FONT_DIRS: extra font directories, path-list separated
	PageSize   string   // PDFMAKER_PAGE_SIZE: a4, a5, letter, legal
	LogLevel   string   // PDFMAKER_LOG_LEVEL: debug, info, warn, error
	LogFormat  string   // PDFMAKER_LOG_FORMAT: text, json
	Workers    int      // PDFMAKER_WORKERS: parallel compilations
}

// knownEnvVars lists valid PDFMAKER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDFMAKER_CONFIG":     true,
	"PDFMAKER_ROOT":       true,
	"PDFMAKER_CATALOG":    true,
	hints.FontDirsEnv:     true,
	"PDFMAKER_PAGE_SIZE":  true,
	"PDFMAKER_LOG_LEVEL":  true,
	"PDFMAKER_LOG_FORMAT": true,
	"PDFMAKER_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PDFMAKER_CONFIG"),
		Root:       os.Getenv("PDFMAKER_ROOT"),
		Catalog:    os.Getenv("PDFMAKER_CATALOG"),
		PageSize:   os.Getenv("PDFMAKER_PAGE_SIZE"),
		LogLevel:   os.Getenv("PDFMAKER_LOG_LEVEL"),
		LogFormat:  os.Getenv("PDFMAKER_LOG_FORMAT"),
	}

	for _, dir := range filepath.SplitList(os.Getenv(hints.FontDirsEnv)) {
		if dir != "" {
			cfg.FontDirs = append(cfg.FontDirs, dir)
		}
	}

	// Invalid or non-positive counts are ignored.
	if workers := os.Getenv("PDFMAKER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized PDFMAKER_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config. Set
// variables override the config file; flags are applied afterwards, so
// the order is: CLI flags > env vars > config file > defaults.
// Font directories are searched after the configured ones.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Storage.Root = env.Root
	}
	if env.Catalog != "" {
		cfg.Catalog.Path = env.Catalog
	}
	if len(env.FontDirs) > 0 {
		cfg.Fonts.Dirs = slices.Concat(cfg.Fonts.Dirs, env.FontDirs)
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
