package pdfmaker

import (
	"strings"
	"time"

	"github.com/poetrynook/pdfmaker/internal/dateutil"
)

// memberFilename appends the resolved suffix to a member book title,
// "My Book" + "auto" giving "My Book, 2024". An empty suffix means
// DefaultMemberSuffix; a suffix that resolves to blank leaves the title alone.
func memberFilename(title, suffix string, t time.Time) (string, error) {
	if suffix == "" {
		suffix = DefaultMemberSuffix
	}
	resolved, err := dateutil.ResolveSuffix(suffix, t)
	if err != nil {
		return "", err
	}
	resolved = strings.TrimSpace(resolved)
	if resolved == "" {
		return title, nil
	}
	return title + ", " + resolved, nil
}
