// Package store persists compiled books under a private storage root.
//
// Books live at pdf/<folder>/<folder_inner>/<name>.pdf relative to the root;
// empty folder levels are skipped. The returned path omits the root so link
// generation elsewhere can prefix its own scheme.
package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/poetrynook/pdfmaker/internal/fileutil"
)

// Sentinel errors for materialization.
var (
	ErrMaterialize   = errors.New("failed to store document")
	ErrInvalidFolder = errors.New("invalid folder name")
	ErrNoRoot        = errors.New("storage root is not set")
)

// BaseDir is the top-level directory under the storage root.
const BaseDir = "pdf"

// Target locates one document under the storage root.
type Target struct {
	Filename    string
	Folder      string
	FolderInner string
}

// Stored describes a written document.
type Stored struct {
	Path   string // slash-separated, relative to the storage root
	Size   int64
	Digest string // BLAKE3-256, hex
}

// Materializer writes documents under Root. It holds no mutable state and
// is safe for concurrent use.
type Materializer struct {
	Root string
}

// New returns a Materializer rooted at root.
func New(root string) *Materializer {
	return &Materializer{Root: root}
}

// RelativePath returns the slash-separated path of t under the storage root.
func RelativePath(t Target) (string, error) {
	parts := []string{BaseDir}
	for _, seg := range []struct{ name, value string }{
		{"folder", t.Folder},
		{"folder_inner", t.FolderInner},
	} {
		if seg.value == "" {
			continue
		}
		if err := fileutil.ValidateSegment(seg.value); err != nil {
			return "", fmt.Errorf("%w: %s %q: %v", ErrInvalidFolder, seg.name, seg.value, err)
		}
		parts = append(parts, seg.value)
	}
	parts = append(parts, SanitizeFilename(t.Filename)+".pdf")
	return path.Join(parts...), nil
}

// Materialize writes data to its target. Directories are created as needed;
// the file appears complete or not at all. The context is checked once,
// before anything touches the filesystem.
func (m *Materializer) Materialize(ctx context.Context, data []byte, t Target) (*Stored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Root == "" {
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, ErrNoRoot)
	}

	rel, err := RelativePath(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMaterialize, err)
	}

	dest := filepath.Join(m.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating directory: %v", ErrMaterialize, err)
	}
	if err := fileutil.WriteAtomic(dest, data, fileutil.FilePermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMaterialize, err)
	}

	sum := blake3.Sum256(data)
	return &Stored{
		Path:   rel,
		Size:   int64(len(data)),
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}
