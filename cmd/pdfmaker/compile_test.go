package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poetrynook/pdfmaker"
	"github.com/poetrynook/pdfmaker/internal/catalog"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake compiler
// ---------------------------------------------------------------------------

// fakeCompiler records books and fails those whose poet is in fail.
type fakeCompiler struct {
	mu    sync.Mutex
	books []pdfmaker.Book
	fail  map[string]error
}

func (f *fakeCompiler) Compile(_ context.Context, b pdfmaker.Book) (*pdfmaker.Result, error) {
	f.mu.Lock()
	f.books = append(f.books, b)
	f.mu.Unlock()

	if err := f.fail[b.Poet.Name]; err != nil {
		return nil, err
	}
	return &pdfmaker.Result{
		Path:     "pdf/classic/Poetry of " + b.Poet.Name + ".pdf",
		Pages:    2 + len(b.Poems),
		Warnings: []string{"legacy block"},
	}, nil
}

func poetManifest(name string) string {
	return "poet:\n  name: " + name + "\npoems:\n  - title: One\n    body: Line\n"
}

// ---------------------------------------------------------------------------
// TestCompileBatch - Concurrent compilation
// ---------------------------------------------------------------------------

func TestCompileBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.yaml", poetManifest("Ann")),
		filepath.Join(dir, "missing.yaml"),
		writeFile(t, dir, "b.yaml", poetManifest("Bob")),
		writeFile(t, dir, "c.yaml", poetManifest("Cid")),
	}
	fc := &fakeCompiler{fail: map[string]error{"Cid": pdfmaker.ErrRender}}

	results := compileBatch(context.Background(), fc, nil, paths, 2)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Manifest != paths[i] {
			t.Errorf("results[%d].Manifest = %q, want %q", i, r.Manifest, paths[i])
		}
	}
	if results[0].Err != nil || results[0].Path != "pdf/classic/Poetry of Ann.pdf" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if !errors.Is(results[1].Err, os.ErrNotExist) {
		t.Errorf("missing manifest error = %v, want os.ErrNotExist", results[1].Err)
	}
	if !errors.Is(results[3].Err, pdfmaker.ErrRender) {
		t.Errorf("failing book error = %v, want ErrRender", results[3].Err)
	}
	if len(fc.books) != 3 {
		t.Errorf("compiler saw %d books, want 3", len(fc.books))
	}
}

func TestCompileBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeFile(t, t.TempDir(), "a.yaml", poetManifest("Ann"))
	fc := &fakeCompiler{}
	results := compileBatch(ctx, fc, nil, []string{path}, 1)

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Err)
	}
	if len(fc.books) != 0 {
		t.Errorf("compiler called %d times after cancellation", len(fc.books))
	}
}

func TestCompileManifest_CatalogWithoutSource(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.yaml", "poet:\n  id: 7\n")
	r := compileManifest(context.Background(), &fakeCompiler{}, nil, path)

	if !errors.Is(r.Err, catalog.ErrNoCatalog) {
		t.Errorf("error = %v, want ErrNoCatalog", r.Err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers / TestValidateWorkers - Worker sizing
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured int
		jobs       int
		want       int
	}{
		{"configured below jobs", 2, 5, 2},
		{"capped at jobs", 8, 3, 3},
		{"at least one", 4, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveWorkers(tt.configured, tt.jobs); got != tt.want {
				t.Errorf("resolveWorkers(%d, %d) = %d, want %d", tt.configured, tt.jobs, got, tt.want)
			}
		})
	}

	t.Run("auto is positive", func(t *testing.T) {
		t.Parallel()

		if got := resolveWorkers(0, 100); got < 1 {
			t.Errorf("resolveWorkers(0, 100) = %d, want >= 1", got)
		}
	})
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 64} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, 65} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []CompileResult{
		{Manifest: "a.yaml", Path: "pdf/classic/A.pdf", Pages: 4, Duration: 1500 * time.Microsecond},
		{Manifest: "b.yaml", Err: errors.New("boom")},
		{Manifest: "c.yaml", Path: "pdf/member/C.pdf", Skipped: []int64{9}, Warnings: []string{"legacy"}},
	}

	tests := []struct {
		name        string
		flags       commonFlags
		wantStdout  []string
		avoidStdout []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created " + filepath.Join("root", "pdf", "classic", "A.pdf"), "2 succeeded, 1 failed"},
		},
		{
			name:       "verbose",
			flags:      commonFlags{verbose: true},
			wantStdout: []string{"a.yaml -> " + filepath.Join("root", "pdf", "classic", "A.pdf") + " (4 pages, 2ms)"},
		},
		{
			name:        "quiet",
			flags:       commonFlags{quiet: true},
			avoidStdout: []string{"Created", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			env := &Environment{Stdout: &stdout, Stderr: &stderr}

			failed := printResults(results, "root", tt.flags, env)

			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want substring %q", stdout.String(), want)
				}
			}
			for _, avoid := range tt.avoidStdout {
				if strings.Contains(stdout.String(), avoid) {
					t.Errorf("stdout = %q, should not contain %q", stdout.String(), avoid)
				}
			}
			for _, want := range []string{"FAILED b.yaml: boom", "WARNING c.yaml: poem 9 is not in the catalog", "WARNING c.yaml: legacy"} {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want substring %q", stderr.String(), want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunCompile - End to end through runMain
// ---------------------------------------------------------------------------

func TestRunCompile_WritesBook(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(t)
	manifest := writeFile(t, t.TempDir(), "jane.yaml", janeDoeManifest)

	code := runMain(context.Background(), []string{"pdfmaker", "compile", "--page-size", "letter", manifest}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	want := filepath.Join(env.Config.Storage.Root, "pdf", "classic", "Poetry of Jane Doe.pdf")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("book not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("written file is not a PDF")
	}
	if !strings.Contains(stdout.String(), "Created "+want) {
		t.Errorf("stdout = %q, want Created line for %s", stdout.String(), want)
	}
}

func TestRunCompile_RootFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(t)
	root := t.TempDir()
	manifest := writeFile(t, t.TempDir(), "member.yaml",
		"kind: member\ntitle: My Selection\nfolderInner: \"17\"\npoems:\n  - title: Dawn\n    body: Light\n")

	code := runMain(context.Background(), []string{"pdfmaker", "compile", "--root", root, "-q", manifest}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(root, "pdf", "member", "17", "My Selection, 2024.pdf")); err != nil {
		t.Errorf("member book not written under --root: %v", err)
	}
}

func TestRunCompile_FromCatalog(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	dump := writeFile(t, dir, "dump.yaml", adaDump)
	manifest := writeFile(t, dir, "ada.yaml", "poet:\n  id: 7\n")

	if code := runMain(context.Background(), []string{"pdfmaker", "catalog", "import", "--catalog", db, dump}, env); code != ExitSuccess {
		t.Fatalf("import exit code = %d, stderr: %s", code, stderr.String())
	}
	code := runMain(context.Background(), []string{"pdfmaker", "compile", "--catalog", db, manifest}, env)
	if code != ExitSuccess {
		t.Fatalf("compile exit code = %d, stderr: %s", code, stderr.String())
	}

	want := filepath.Join(env.Config.Storage.Root, "pdf", "classic", "7", "Poetry of Ada Byron.pdf")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("catalog book not written: %v", err)
	}
}

func TestRunCompile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", janeDoeManifest)
	badKind := writeFile(t, dir, "kind.yaml", "kind: epic\npoems:\n  - title: A\n    body: B\n")
	badFolder := writeFile(t, dir, "folder.yaml", "folder: \"..\"\npoems:\n  - title: A\n    body: B\n")
	needsCatalog := writeFile(t, dir, "catalog.yaml", "poet:\n  id: 7\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr []string
	}{
		{"missing manifest", []string{filepath.Join(dir, "nope.yaml")}, ExitIO, []string{"FAILED"}},
		{"invalid kind", []string{badKind}, ExitUsage, []string{"FAILED", "invalid book manifest"}},
		{"invalid folder", []string{badFolder}, ExitUsage, []string{"FAILED", "invalid folder name"}},
		{"no catalog", []string{needsCatalog}, ExitUsage, []string{"hint: set catalog.path"}},
		{"one of two fails", []string{good, badKind}, ExitUsage, []string{"1 of 2 book(s) failed"}},
		{"invalid workers", []string{"--workers=-1", good}, ExitUsage, []string{"invalid worker count"}},
		{"invalid page size", []string{"--page-size", "b7", good}, ExitUsage, []string{"page.size", "hint: available: a4, a5, letter, legal"}},
		{"missing config", []string{"--config", "absent-pdfmaker-config", good}, ExitUsage, []string{"config file not found", "hint: use --config"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv(t)
			args := append([]string{"pdfmaker", "compile"}, tt.args...)

			code := runMain(context.Background(), args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want substring %q", stderr.String(), want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMarkup - Markup output
// ---------------------------------------------------------------------------

func TestRunMarkup(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(t)
	manifest := writeFile(t, t.TempDir(), "jane.yaml", janeDoeManifest)

	code := runMain(context.Background(), []string{"pdfmaker", "markup", manifest}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"1<Jane Doe>\n", "2<Dawn>\n", "2<Dusk>\n", "#NP\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("markup missing %q:\n%s", want, out)
		}
	}
	if entries, _ := os.ReadDir(env.Config.Storage.Root); len(entries) != 0 {
		t.Errorf("markup wrote %d entries under the storage root", len(entries))
	}
}
