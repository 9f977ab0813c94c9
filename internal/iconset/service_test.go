package iconset

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-svglist/internal/svgo"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

type recordingSerializer struct {
	mu      sync.Mutex
	dest    string
	fail    map[string]error
	written map[string]*Collection
}

func newRecordingSerializer(dest string) *recordingSerializer {
	return &recordingSerializer{dest: dest, fail: map[string]error{}, written: map[string]*Collection{}}
}

func (s *recordingSerializer) Serialize(_ context.Context, name string, c *Collection) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[name]; err != nil {
		return "", err
	}
	s.written[name] = c
	return filepath.Join(s.dest, name+".js"), nil
}

func writeFile(t *testing.T, fs afero.Fs, path, data string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestServiceRunAggregatesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/icons/arrows/left.svg", `<svg viewBox="0 0 24 24"><path d="M1 1"/></svg>`)
	writeFile(t, fs, "/icons/arrows/right.svg", `<svg viewBox="0 0 24 24"><path d="M2 2"/></svg>`)
	writeFile(t, fs, "/icons/arrows/readme.txt", `ignored`)
	writeFile(t, fs, "/icons/arrows/upper.SVG", `<svg/>`)
	writeFile(t, fs, "/icons/arrows/nested/deep.svg", `<svg/>`)
	writeFile(t, fs, "/icons/stray.svg", `<svg/>`)
	writeFile(t, fs, "/icons/broken/bad.svg", `<svg><path d="M0 0"></svg>`)
	writeFile(t, fs, "/icons/broken/good-one.svg", `<svg><path d="M3 3"/></svg>`)

	serializer := newRecordingSerializer("/out")
	runID := uuid.MustParse("8f6f1f3e-6a2b-4c1d-9f3e-2b1d4c5a6e7f")
	svc := NewService(Config{
		SourceRoot: "/icons",
		DestRoot:   "/out",
		Plugins:    svgo.DefaultPlugins(),
	}, ServiceDeps{
		FS:          fs,
		Serializer:  serializer,
		IDGenerator: func() uuid.UUID { return runID },
	})

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.RunID != runID {
		t.Fatalf("unexpected run id %s", report.RunID)
	}
	if report.Artifacts != 2 || report.Entries != 3 || report.FileFailures != 1 || report.DirectoryFailures != 0 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if len(report.SkippedPlugins) == 0 {
		t.Fatal("expected unsupported default plugins to be reported")
	}

	if ok, _ := afero.DirExists(fs, "/out"); !ok {
		t.Fatal("expected destination root to be created")
	}

	arrows := serializer.written["arrows"]
	if arrows == nil {
		t.Fatal("expected arrows collection")
	}
	if diff := cmp.Diff([]string{"left", "right"}, arrows.Keys()); diff != "" {
		t.Fatalf("arrows keys mismatch (-want +got):\n%s", diff)
	}
	left, _ := arrows.Get("left")
	if left.Viewbox == nil || *left.Viewbox != "0 0 24 24" || len(left.Shapes) != 1 || *left.Shapes[0].Path != "M1 1" {
		t.Fatalf("unexpected left record: %+v", left)
	}

	broken := serializer.written["broken"]
	if diff := cmp.Diff([]string{"goodOne"}, broken.Keys()); diff != "" {
		t.Fatalf("broken keys mismatch (-want +got):\n%s", diff)
	}

	var brokenReport DirectoryReport
	for _, dir := range report.Directories {
		if dir.Directory.Name == "broken" {
			brokenReport = dir
		}
	}
	if len(brokenReport.Failures) != 1 || brokenReport.Failures[0].Stage != StageNormalize {
		t.Fatalf("expected one normalize failure, got %+v", brokenReport.Failures)
	}
	if !errors.Is(brokenReport.Failures[0], svgo.ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", brokenReport.Failures[0])
	}
	if brokenReport.Artifact != "/out/broken.js" {
		t.Fatalf("unexpected artifact %s", brokenReport.Artifact)
	}
}

func TestServiceRunWritesEmptyDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/icons/empty", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	serializer := newRecordingSerializer("/out")

	report, err := NewService(Config{SourceRoot: "/icons", DestRoot: "/out"}, ServiceDeps{FS: fs, Serializer: serializer}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Artifacts != 1 {
		t.Fatalf("expected one artifact, got %d", report.Artifacts)
	}
	if c := serializer.written["empty"]; c == nil || c.Len() != 0 {
		t.Fatalf("expected empty collection, got %+v", c)
	}
}

func TestServiceRunIsolatesSerializerFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/icons/a/x.svg", `<svg><path d="M0 0"/></svg>`)
	writeFile(t, fs, "/icons/b/y.svg", `<svg><path d="M0 0"/></svg>`)
	serializer := newRecordingSerializer("/out")
	serializer.fail["a"] = errors.New("disk full")

	report, err := NewService(Config{SourceRoot: "/icons", DestRoot: "/out", DirectoryConcurrency: 1}, ServiceDeps{FS: fs, Serializer: serializer}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.DirectoryFailures != 1 || report.Artifacts != 1 {
		t.Fatalf("unexpected totals %+v", report)
	}
	var dirErr *DirectoryError
	if !errors.As(report.Directories[0].Err, &dirErr) || dirErr.Stage != StageSerialize {
		t.Fatalf("expected serialize directory error, got %v", report.Directories[0].Err)
	}
	if serializer.written["b"] == nil {
		t.Fatal("expected sibling directory to be written")
	}
}

func TestServiceRunReportsDuplicateKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/icons/arrows/arrow-left.svg", `<svg><path d="M1 1"/></svg>`)
	writeFile(t, fs, "/icons/arrows/arrow_left.svg", `<svg><path d="M9 9"/></svg>`)
	serializer := newRecordingSerializer("/out")

	report, err := NewService(Config{SourceRoot: "/icons", DestRoot: "/out"}, ServiceDeps{FS: fs, Serializer: serializer}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"arrowLeft"}, report.Directories[0].Duplicates); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
	record, _ := serializer.written["arrows"].Get("arrowLeft")
	if *record.Shapes[0].Path != "M9 9" {
		t.Fatalf("expected later file to win, got %s", *record.Shapes[0].Path)
	}
}

func TestServiceRunFailsWithoutSourceRoot(t *testing.T) {
	_, err := NewService(Config{SourceRoot: "/missing", DestRoot: "/out"}, ServiceDeps{FS: afero.NewMemMapFs()}).Run(context.Background())
	if !errors.Is(err, ErrSourceRoot) {
		t.Fatalf("expected ErrSourceRoot, got %v", err)
	}
}
