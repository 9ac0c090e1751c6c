// Package atomicfile persists generated artifacts so that readers never see
// a partially written file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// DefaultPerm is the permission of created files.
const DefaultPerm os.FileMode = 0o644

// File is one artifact destined for Path.
type File struct {
	Path string
	Data []byte
}

// Write stores data at path via a temporary file and a rename. Missing
// parent directories are created.
func Write(path string, data []byte) error {
	return WriteAll(File{Path: path, Data: data})
}

// WriteAll stores every file as one set. All parent directories are created
// and every temporary file is fully written before the first rename; on any
// error before that point no destination is touched and the temporary files
// are removed. Files with an empty path are skipped.
func WriteAll(files ...File) error {
	var (
		pending []*renameio.PendingFile
		paths   []string
	)

	defer func() {
		for _, p := range pending {
			p.Cleanup()
		}
	}()

	for _, f := range files {
		if f.Path == "" {
			continue
		}

		if dir := filepath.Dir(f.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("atomicfile: %s: %w", f.Path, err)
			}
		}
	}

	for _, f := range files {
		if f.Path == "" {
			continue
		}

		p, err := renameio.NewPendingFile(f.Path,
			renameio.WithPermissions(DefaultPerm),
			renameio.WithExistingPermissions(),
		)
		if err != nil {
			return fmt.Errorf("atomicfile: %s: %w", f.Path, err)
		}

		pending = append(pending, p)
		paths = append(paths, f.Path)

		if _, err := p.Write(f.Data); err != nil {
			return fmt.Errorf("atomicfile: %s: %w", f.Path, err)
		}
	}

	for i, p := range pending {
		if err := p.CloseAtomicallyReplace(); err != nil {
			return fmt.Errorf("atomicfile: %s: %w", paths[i], err)
		}
	}

	return nil
}
