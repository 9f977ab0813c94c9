package iconset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRoot is returned when a document has no svg element.
	ErrMissingRoot = errors.New("iconset: document has no svg root element")
	// ErrMalformedDocument is returned when the optimized markup cannot be parsed.
	ErrMalformedDocument = errors.New("iconset: malformed document")
	// ErrSourceRoot is returned when the source root cannot be listed.
	ErrSourceRoot = errors.New("iconset: source root unavailable")
	// ErrArtifactWrite marks serializer failures that happened while
	// persisting an artifact rather than while encoding it.
	ErrArtifactWrite = errors.New("iconset: artifact write failed")
)

// Stage names the pipeline step at which a failure happened.
type Stage string

const (
	StageRead      Stage = "read"
	StageNormalize Stage = "normalize"
	StageExtract   Stage = "extract"
	StageList      Stage = "list"
	StageSerialize Stage = "serialize"
	StageWrite     Stage = "write"
)

// FileError reports a file level failure. It never aborts sibling files.
type FileError struct {
	Directory string
	File      string
	Key       string
	Stage     Stage
	Err       error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("iconset: %s %s @ %s: %v", e.Stage, e.File, e.Directory, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// DirectoryError reports a directory level failure. It never aborts sibling
// directories.
type DirectoryError struct {
	Directory string
	Stage     Stage
	Err       error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("iconset: %s directory %s: %v", e.Stage, e.Directory, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}
