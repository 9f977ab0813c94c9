package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/pkg/interfaces"
	"github.com/spf13/afero"
)

const (
	writerOpEnsureDir = "output.ensure_dir"
	writerOpWrite     = "output.write"
)

// ErrDestinationMissing is returned when an artifact is written into a
// directory that does not exist.
var ErrDestinationMissing = errors.New("output: destination directory does not exist")

// WriteRequest describes one artifact write.
type WriteRequest struct {
	Path    string
	Content []byte
	Format  Format
}

// ArtifactWriter abstracts filesystem specifics for generated artifacts.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteRequest) error
}

// NewArtifactWriter returns a writer backed by fs. A nil fs selects the OS
// filesystem.
func NewArtifactWriter(fs afero.Fs, logger interfaces.Logger) ArtifactWriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &fsWriter{fs: fs, logger: logger}
}

type fsWriter struct {
	fs     afero.Fs
	logger interfaces.Logger
}

func (w *fsWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("%s %s: %w", writerOpEnsureDir, path, err)
	}
	w.logger.Debug(writerOpEnsureDir, "path", path)
	return nil
}

// WriteFile replaces the artifact at req.Path. The parent directory must
// already exist.
func (w *fsWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("output: write requires path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	parent := filepath.Dir(req.Path)
	exists, err := afero.DirExists(w.fs, parent)
	if err != nil {
		return fmt.Errorf("%s %s: %w", writerOpWrite, req.Path, err)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w: %s", writerOpWrite, req.Path, ErrDestinationMissing, parent)
	}
	if err := afero.WriteFile(w.fs, req.Path, req.Content, os.FileMode(0o644)); err != nil {
		return fmt.Errorf("%s %s: %w", writerOpWrite, req.Path, err)
	}
	w.logger.Debug(writerOpWrite, "path", req.Path, "format", string(req.Format), "bytes", len(req.Content))
	return nil
}
