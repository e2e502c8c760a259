// Package config loads the YAML configuration of the book compiler.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poetrynook/pdfmaker/internal/fileutil"
	"github.com/poetrynook/pdfmaker/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName is the directory name under the user config directory.
const AppName = "pdfmaker"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxFontNameLength    = 100
	MaxTextLength        = 500 // Footer/free-form text
	MaxTitleLength       = 200 // Cover and contents titles
	MaxPageSizeLength    = 10  // "a4", "letter"
	MaxOrientationLength = 10  // "portrait", "landscape"
	MaxFooterLines       = 4
	MaxFontDirs          = 16
	MaxWorkers           = 64
	MaxMargin            = 200
)

// Config holds all configuration for book compilation.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Page     PageConfig     `yaml:"page"`
	Fonts    FontsConfig    `yaml:"fonts"`
	Cover    CoverConfig    `yaml:"cover"`
	Footer   FooterConfig   `yaml:"footer"`
	Contents ContentsConfig `yaml:"contents"`
	Log      LogConfig      `yaml:"log"`
	Workers  int            `yaml:"workers"` // 0 = GOMAXPROCS
}

// StorageConfig defines where compiled books are written.
type StorageConfig struct {
	Root string `yaml:"root"` // Private storage root; books go under <root>/pdf/
}

// CatalogConfig defines the poem catalog database.
type CatalogConfig struct {
	Path string `yaml:"path"` // SQLite file (empty = catalog disabled)
}

// PageConfig defines paper and margins, in points.
type PageConfig struct {
	Size        string        `yaml:"size"`        // "a4", "a5", "letter", "legal"
	Orientation string        `yaml:"orientation"` // "portrait", "landscape"
	Margins     MarginsConfig `yaml:"margins"`
}

// MarginsConfig holds page margins in points.
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// FontsConfig defines font lookup. Dirs are searched in order.
type FontsConfig struct {
	Dirs []string `yaml:"dirs"`
	Main string   `yaml:"main"` // Body face; falls back to Times
	Code string   `yaml:"code"` // Code face; falls back to Courier
}

// CoverConfig defines the cover page.
type CoverConfig struct {
	Presenter    string `yaml:"presenter"`    // Line above the title
	DefaultTitle string `yaml:"defaultTitle"` // Used when a book has no title
}

// FooterConfig defines the lines at the bottom of every page but the cover.
type FooterConfig struct {
	Lines       []string `yaml:"lines"`
	PageNumbers bool     `yaml:"pageNumbers"`
}

// ContentsConfig defines the table of contents and the poems section.
type ContentsConfig struct {
	Title   string `yaml:"title"`
	Section string `yaml:"section"` // Centered line before the first poem
}

// LogConfig defines logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

var (
	validSizes        = []string{"a4", "a5", "letter", "legal"}
	validOrientations = []string{"portrait", "landscape"}
	validLevels       = []string{"", "debug", "info", "warn", "warning", "error"}
	validFormats      = []string{"", "text", "json"}
)

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("storage.root", c.Storage.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("catalog.path", c.Catalog.Path, MaxPathLength); err != nil {
		return err
	}

	// Validate page fields
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if err := validateOneOf("page.size", c.Page.Size, validSizes); err != nil {
		return err
	}
	if err := validateOneOf("page.orientation", c.Page.Orientation, validOrientations); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"page.margins.top":    c.Page.Margins.Top,
		"page.margins.bottom": c.Page.Margins.Bottom,
		"page.margins.left":   c.Page.Margins.Left,
		"page.margins.right":  c.Page.Margins.Right,
	} {
		if v < 0 || v > MaxMargin {
			return fmt.Errorf("%w: %s must be between 0 and %d, got %.1f", ErrInvalidValue, name, MaxMargin, v)
		}
	}

	// Validate font fields
	if len(c.Fonts.Dirs) > MaxFontDirs {
		return fmt.Errorf("%w: fonts.dirs has %d entries (max %d)", ErrInvalidValue, len(c.Fonts.Dirs), MaxFontDirs)
	}
	for i, dir := range c.Fonts.Dirs {
		if err := validateFieldLength(fmt.Sprintf("fonts.dirs[%d]", i), dir, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("fonts.main", c.Fonts.Main, MaxFontNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("fonts.code", c.Fonts.Code, MaxFontNameLength); err != nil {
		return err
	}

	// Validate cover, footer and contents text
	if err := validateFieldLength("cover.presenter", c.Cover.Presenter, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("cover.defaultTitle", c.Cover.DefaultTitle, MaxTitleLength); err != nil {
		return err
	}
	if len(c.Footer.Lines) > MaxFooterLines {
		return fmt.Errorf("%w: footer.lines has %d entries (max %d)", ErrInvalidValue, len(c.Footer.Lines), MaxFooterLines)
	}
	for i, line := range c.Footer.Lines {
		if err := validateFieldLength(fmt.Sprintf("footer.lines[%d]", i), line, MaxTextLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("contents.title", c.Contents.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("contents.section", c.Contents.Section, MaxTitleLength); err != nil {
		return err
	}

	// Validate logging and workers
	if err := validateOneOf("log.level", c.Log.Level, validLevels); err != nil {
		return err
	}
	if err := validateOneOf("log.format", c.Log.Format, validFormats); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf checks a case-insensitive enumerated value.
func validateOneOf(fieldName, value string, valid []string) error {
	lower := strings.ToLower(value)
	for _, v := range valid {
		if lower == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(nonEmpty(valid), ", "))
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Root: "private"},
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Margins:     MarginsConfig{Top: 50, Bottom: 70, Left: 50, Right: 50},
		},
		Fonts: FontsConfig{Main: "Times", Code: "Courier"},
		Cover: CoverConfig{
			Presenter:    "Poetry Nook presents",
			DefaultTitle: "Poetry Nook Collection",
		},
		Footer: FooterConfig{
			Lines: []string{
				"Find more poetry at http://www.poetrynook.com",
				"Made with pdfmaker",
			},
			PageNumbers: true,
		},
		Contents: ContentsConfig{Title: "Contents", Section: "Poems"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values missing from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/pdfmaker/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchedPaths lists the files LoadConfig would try for a config name,
// for error hints.
func SearchedPaths(name string) []string {
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, AppName, name+".yaml"),
			filepath.Join(dir, AppName, name+".yml"))
	}
	return paths
}
