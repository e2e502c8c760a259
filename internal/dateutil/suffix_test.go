package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// publishedAt is the compile time used by suffix tests.
var publishedAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestResolveSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "auto is the year", value: "auto", want: "2024"},
		{name: "keyword is case insensitive", value: "AUTO", want: "2024"},
		{name: "keyword tolerates spaces", value: " auto ", want: "2024"},
		{name: "year preset", value: "auto:year", want: "2024"},
		{name: "month preset", value: "auto:month", want: "March 2024"},
		{name: "iso preset", value: "auto:iso", want: "2024-03-15"},
		{name: "preset is case insensitive", value: "auto:Month", want: "March 2024"},
		{name: "custom layout", value: "auto:D MMM YYYY", want: "15 Mar 2024"},
		{name: "custom layout with literal", value: "Auto:[Spring] YYYY", want: "Spring 2024"},
		{name: "plain text", value: "Spring", want: "Spring"},
		{name: "text starting with auto", value: "Autumn 2024", want: "Autumn 2024"},
		{name: "text with a colon", value: "Vol: 2", want: "Vol: 2"},
		{name: "literal date", value: "2024-01-01", want: "2024-01-01"},
		{name: "empty", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveSuffix(tt.value, publishedAt)
			if err != nil {
				t.Fatalf("ResolveSuffix(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveSuffix(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolveSuffix_Errors(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"auto:", "auto:[YYYY", "auto:" + strings.Repeat("D", MaxLayoutLength+1)} {
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			_, err := ResolveSuffix(value, publishedAt)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ResolveSuffix(%q) error = %v, want ErrInvalidDateFormat", value, err)
			}
		})
	}
}

func TestSuffixPresets_NoPathSeparators(t *testing.T) {
	t.Parallel()

	for name, layout := range SuffixPresets {
		got, err := ResolveSuffix("auto:"+name, publishedAt)
		if err != nil {
			t.Errorf("preset %q (%s): %v", name, layout, err)
			continue
		}
		if strings.ContainsAny(got, `/\`) {
			t.Errorf("preset %q resolves to %q, which contains a path separator", name, got)
		}
	}
}
