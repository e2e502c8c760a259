package main

import (
	"errors"
	"os"

	"github.com/poetrynook/pdfmaker"
	"github.com/poetrynook/pdfmaker/internal/catalog"
	"github.com/poetrynook/pdfmaker/internal/config"
	"github.com/poetrynook/pdfmaker/internal/logging"
)

// Exit codes for the pdfmaker CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All books compiled
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, manifest or book
	ExitIO      = 3 // File not found, permission denied, storage or catalog failure
	ExitRender  = 4 // Font or PDF generation errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Invalid folders are usage errors even though they surface while storing.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, pdfmaker.ErrFontUnavailable) ||
		errors.Is(err, pdfmaker.ErrRender) {
		return ExitRender
	}

	// I/O errors from the operating system (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, catalog.ErrOpen) ||
		errors.Is(err, catalog.ErrQuery) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoManifest) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrNoCatalogPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, catalog.ErrManifest) ||
		errors.Is(err, catalog.ErrNoCatalog) ||
		errors.Is(err, catalog.ErrInvalidEntry) ||
		errors.Is(err, catalog.ErrPoetNotFound) ||
		errors.Is(err, pdfmaker.ErrInvalidBookKind) ||
		errors.Is(err, pdfmaker.ErrEmptyBook) ||
		errors.Is(err, pdfmaker.ErrEmptyDocument) ||
		errors.Is(err, pdfmaker.ErrUnknownFormat) ||
		errors.Is(err, pdfmaker.ErrInvalidSuffix) ||
		errors.Is(err, pdfmaker.ErrInvalidPageSize) ||
		errors.Is(err, pdfmaker.ErrInvalidOrientation) ||
		errors.Is(err, pdfmaker.ErrInvalidMargin) ||
		errors.Is(err, pdfmaker.ErrInvalidFolder) {
		return ExitUsage
	}

	// Storage errors (exit 3)
	if errors.Is(err, pdfmaker.ErrMaterialize) {
		return ExitIO
	}

	return ExitGeneral
}
