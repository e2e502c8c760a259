package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/poetrynook/pdfmaker/internal/catalog"
	"github.com/poetrynook/pdfmaker/internal/config"
	"github.com/poetrynook/pdfmaker/internal/fileutil"
	"github.com/poetrynook/pdfmaker/internal/hints"
	"github.com/poetrynook/pdfmaker/internal/render"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Fonts    []fontInfo  `json:"fonts"`
	Storage  storageInfo `json:"storage"`
	Catalog  catalogInfo `json:"catalog"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// fontInfo holds the resolution of one configured face.
type fontInfo struct {
	Role     string `json:"role"` // "main" or "code"
	Name     string `json:"name"`
	Family   string `json:"family,omitempty"`
	Source   string `json:"source,omitempty"`
	Fallback bool   `json:"fallback"`
}

// storageInfo holds storage root checks.
type storageInfo struct {
	Root     string `json:"root"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// catalogInfo holds catalog checks.
type catalogInfo struct {
	Path   string `json:"path,omitempty"`
	Exists bool   `json:"exists"`
	Poets  int    `json:"poets"` // poets with poems, capped at catalog.PoetsLimit
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	MaxProcs   int    `json:"gomaxprocs"`
	Container  bool   `json:"container"`
	FontDirEnv string `json:"font_dirs_env,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var common commonFlags
	var jsonOutput bool
	fs := newFlagSet("doctor", env.Stdout, printDoctorUsage)
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	if err := parse(fs, args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}

	cfg, err := loadSettings(&common, env, nil)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}

	result := runDoctor(context.Background(), cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoVersion:  runtime.Version(),
			MaxProcs:   runtime.GOMAXPROCS(0),
			Container:  hints.IsInContainer(),
			FontDirEnv: os.Getenv(hints.FontDirsEnv),
		},
	}

	checkFonts(result, cfg)
	checkStorage(result, cfg.Storage.Root)
	checkCatalog(ctx, result, cfg.Catalog.Path)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkFonts resolves the configured faces the way a compilation would.
func checkFonts(result *doctorResult, cfg *config.Config) {
	for _, f := range []struct {
		role string
		spec render.FontSpec
		name string
	}{
		{"main", render.DefaultMainFont, cfg.Fonts.Main},
		{"code", render.DefaultCodeFont, cfg.Fonts.Code},
	} {
		spec := f.spec
		if f.name != "" {
			spec.Name = f.name
		}
		info := fontInfo{Role: f.role, Name: spec.Name}

		font, err := render.ResolveFont(cfg.Fonts.Dirs, spec)
		if err != nil {
			result.Errors = append(result.Errors, err.Error()+hints.ForFontUnavailable(cfg.Fonts.Dirs))
			result.Fonts = append(result.Fonts, info)
			continue
		}
		info.Family, info.Source, info.Fallback = font.Family, font.Source, font.Fallback
		if font.Fallback {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s font %q not found, using %s", f.role, spec.Name, font.Family))
		}
		result.Fonts = append(result.Fonts, info)
	}
}

// checkStorage verifies the storage root can be written.
func checkStorage(result *doctorResult, root string) {
	result.Storage.Root = root
	if root == "" {
		result.Errors = append(result.Errors, "storage root is not set"+hints.ForStorage(""))
		return
	}

	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("storage root %s does not exist yet; it is created on the first compile", root))
		return
	}
	result.Storage.Exists = true

	f, err := os.CreateTemp(root, ".pdfmaker-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("storage root not writable: %s%s", root, hints.ForStorage(root)))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.Storage.Writable = true
}

// checkCatalog counts the catalog's poets. A missing file is reported,
// not created.
func checkCatalog(ctx context.Context, result *doctorResult, path string) {
	result.Catalog.Path = path
	if path == "" {
		result.Warnings = append(result.Warnings,
			"no catalog configured; manifests must carry their poems inline")
		return
	}
	if !fileutil.FileExists(path) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("catalog %s does not exist%s", path, hints.ForCatalog(path)))
		return
	}
	result.Catalog.Exists = true

	cat, err := catalog.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	defer func() { _ = cat.Close() }()

	poets, err := cat.Poets(ctx, "")
	if err != nil {
		result.Errors = append(result.Errors, err.Error()+hints.ForCatalog(path))
		return
	}
	result.Catalog.Poets = len(poets)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdfmaker doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fonts")
	for _, f := range r.Fonts {
		switch {
		case f.Family == "":
			fmt.Fprintf(w, "  [ERROR] %s: %s unavailable\n", f.Role, f.Name)
		case f.Fallback:
			fmt.Fprintf(w, "  [WARN] %s: %s not found, using %s\n", f.Role, f.Name, f.Family)
		default:
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", f.Role, f.Family, f.Source)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Storage")
	switch {
	case r.Storage.Writable:
		fmt.Fprintf(w, "  [OK] %s: writable\n", r.Storage.Root)
	case r.Storage.Exists:
		fmt.Fprintf(w, "  [ERROR] %s: not writable\n", r.Storage.Root)
	default:
		fmt.Fprintf(w, "  [WARN] %s: not created yet\n", r.Storage.Root)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Catalog")
	switch {
	case r.Catalog.Path == "":
		fmt.Fprintln(w, "  [WARN] not configured")
	case r.Catalog.Exists:
		fmt.Fprintf(w, "  [OK] %s: %d poet(s) with poems\n", r.Catalog.Path, r.Catalog.Poets)
	default:
		fmt.Fprintf(w, "  [WARN] %s: not found\n", r.Catalog.Path)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s, %s, GOMAXPROCS=%d\n", r.Env.OS, r.Env.Arch, r.Env.GoVersion, r.Env.MaxProcs)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to compile")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	default:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
