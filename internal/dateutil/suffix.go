package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSuffixLayout is the layout of a bare "auto" suffix.
const DefaultSuffixLayout = "YYYY"

// SuffixPresets names the suffix layouts accepted after "auto:". None of
// them contains a path separator, so a resolved suffix survives filename
// sanitizing unchanged.
var SuffixPresets = map[string]string{
	"year":  "YYYY",
	"month": "MMMM YYYY",
	"iso":   "YYYY-MM-DD",
}

// ResolveSuffix resolves a member book filename suffix against t.
//
//   - "auto" gives the year, "2024"
//   - "auto:month" gives a preset, "March 2024"
//   - "auto:D MMM YYYY" gives a layout, "15 Mar 2024"
//   - anything else, such as "Spring" or "Autumn 2024", is returned unchanged
//
// The keyword is case-insensitive; preset names too.
func ResolveSuffix(value string, t time.Time) (string, error) {
	keyword, layout, hasLayout := strings.Cut(value, ":")
	if !strings.EqualFold(strings.TrimSpace(keyword), "auto") {
		return value, nil
	}

	switch {
	case !hasLayout:
		layout = DefaultSuffixLayout
	case SuffixPresets[strings.ToLower(layout)] != "":
		layout = SuffixPresets[strings.ToLower(layout)]
	}

	goLayout, err := ParseLayout(layout)
	if err != nil {
		return "", fmt.Errorf("suffix %q: %w", value, err)
	}
	return t.Format(goLayout), nil
}
