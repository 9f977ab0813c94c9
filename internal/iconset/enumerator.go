package iconset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-svglist/internal/naming"
	"github.com/spf13/afero"
)

// DefaultExtension is the only file suffix picked up inside a directory.
const DefaultExtension = ".svg"

// Enumerator lists source directories and candidate files. Listing is one
// level deep and sorted by name so runs are reproducible.
type Enumerator struct {
	fs  afero.Fs
	ext string
}

// NewEnumerator returns an enumerator over fs. A nil fs selects the OS
// filesystem.
func NewEnumerator(fs afero.Fs) *Enumerator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Enumerator{fs: fs, ext: DefaultExtension}
}

// Directories lists the immediate subdirectories of root. Regular files at the
// root are ignored.
func (e *Enumerator) Directories(ctx context.Context, root string) ([]SourceDirectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(e.fs, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceRoot, root, err)
	}
	dirs := make([]SourceDirectory, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		dirs = append(dirs, SourceDirectory{
			Path: filepath.Join(root, info.Name()),
			Name: info.Name(),
		})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs, nil
}

// Files lists the candidate icon files of dir. Only regular entries whose name
// ends with the extension (case sensitive) are returned; nested directories
// are not descended into.
func (e *Enumerator) Files(ctx context.Context, dir SourceDirectory) ([]CandidateFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(e.fs, dir.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("directory %s vanished: %w", dir.Path, err)
		}
		return nil, err
	}
	files := make([]CandidateFile, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), e.ext) {
			continue
		}
		filePath := filepath.Join(dir.Path, info.Name())
		files = append(files, CandidateFile{
			DirectoryPath: dir.Path,
			FilePath:      filePath,
			Key:           naming.FileKey(filePath, e.ext),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].FilePath < files[j].FilePath })
	return files, nil
}
