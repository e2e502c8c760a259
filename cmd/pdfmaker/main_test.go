package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/poetrynook/pdfmaker/internal/config"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

// testEnv returns an environment writing books under a temporary root.
func testEnv(t *testing.T) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Root = t.TempDir()
	cfg.Log.Level = "error"

	var stdout, stderr bytes.Buffer
	return &Environment{Now: fixedNow, Stdout: &stdout, Stderr: &stderr, Config: cfg}, &stdout, &stderr
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

const janeDoeManifest = `kind: classic
poet:
  name: Jane Doe
  bio: "She wrote about light.<br>And about dusk."
  birth: "04/12/1920"
poems:
  - title: Dawn
    body: "Light<br>rises"
  - title: Dusk
    body: "Dark<br>falls"
`

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"pdfmaker"}, ExitUsage, "", "Usage: pdfmaker"},
		{"version", []string{"pdfmaker", "version"}, ExitSuccess, "pdfmaker " + Version, ""},
		{"--version", []string{"pdfmaker", "--version"}, ExitSuccess, "pdfmaker " + Version, ""},
		{"help", []string{"pdfmaker", "help"}, ExitSuccess, "Commands:", ""},
		{"--help", []string{"pdfmaker", "--help"}, ExitSuccess, "Commands:", ""},
		{"help compile", []string{"pdfmaker", "help", "compile"}, ExitSuccess, "--workers", ""},
		{"help catalog", []string{"pdfmaker", "help", "catalog"}, ExitSuccess, "export", ""},
		{"help unknown", []string{"pdfmaker", "help", "bogus"}, ExitUsage, "", "unknown command"},
		{"unknown command", []string{"pdfmaker", "bogus"}, ExitUsage, "", "unknown command: bogus"},
		{"compile --help", []string{"pdfmaker", "compile", "--help"}, ExitSuccess, "Usage: pdfmaker compile", ""},
		{"compile unknown flag", []string{"pdfmaker", "compile", "--bogus"}, ExitUsage, "", "invalid usage"},
		{"compile without manifest", []string{"pdfmaker", "compile"}, ExitUsage, "", "no manifest specified"},
		{"markup without manifest", []string{"pdfmaker", "markup"}, ExitUsage, "", "no manifest specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(t)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ManifestShorthand - "pdfmaker book.yaml" compiles
// ---------------------------------------------------------------------------

func TestRunMain_ManifestShorthand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(t)
	manifest := writeFile(t, t.TempDir(), "jane.yaml", janeDoeManifest)

	code := runMain(context.Background(), []string{"pdfmaker", manifest}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("stdout = %q, want a Created line", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Verbose detection before flag parsing
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"compile", "-v", "a.yaml"}, true},
		{[]string{"compile", "--verbose"}, true},
		{[]string{"compile", "a.yaml"}, false},
		{[]string{"compile", "--", "-v"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			if got := wantsVerbose(tt.args); got != tt.want {
				t.Errorf("wantsVerbose(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeManifest - YAML extension detection
// ---------------------------------------------------------------------------

func TestLooksLikeManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"book.yaml", true},
		{"book.YML", true},
		{"dir/book.yml", true},
		{"book.md", false},
		{"compile", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeManifest(tt.input); got != tt.want {
				t.Errorf("looksLikeManifest(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
