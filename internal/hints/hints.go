// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/poetrynook/pdfmaker/internal/fileutil"
)

// FontDirsEnv names the environment variable listing extra font directories.
const FontDirsEnv = "PDFMAKER_FONT_DIRS"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontUnavailable returns hints for a font that could not be loaded.
// dirs are the directories that were searched.
func ForFontUnavailable(dirs []string) string {
	var hints []string

	if len(dirs) == 0 && os.Getenv(FontDirsEnv) == "" {
		hints = append(hints, "set fonts.dirs in the config or "+FontDirsEnv)
	}
	if IsInContainer() {
		hints = append(hints, "mount the font directory into the container")
	}
	hints = append(hints, "fonts need a .ttf file or a gofpdf .json definition with its .z program")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/pdfmaker/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/pdfmaker") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStorage returns hints for errors writing under the storage root.
func ForStorage(root string) string {
	if root == "" {
		return format("set storage.root in the config or use --root")
	}
	return format("check " + root + " exists and is writable")
}

// ForCatalog returns hints for catalog errors.
func ForCatalog(path string) string {
	if path == "" {
		return format("set catalog.path in the config or use --catalog")
	}
	return format("run 'pdfmaker catalog import' to create " + path)
}

// ForPageSize returns hints listing the accepted page sizes.
func ForPageSize(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
