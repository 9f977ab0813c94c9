package iconset

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/internal/svgo"
	"github.com/goliatone/go-svglist/pkg/interfaces"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Serializer persists a directory collection and returns the artifact path.
type Serializer interface {
	Serialize(ctx context.Context, name string, collection *Collection) (string, error)
}

// AggregatorOptions tunes directory aggregation.
type AggregatorOptions struct {
	Plugins     []svgo.PluginSpec
	Concurrency int
}

// AggregatorDeps lists the collaborators of an Aggregator.
type AggregatorDeps struct {
	FS         afero.Fs
	Enumerator *Enumerator
	Normalizer Normalizer
	Extractor  Extractor
	Serializer Serializer
	Logger     interfaces.Logger
}

// Aggregator turns one source directory into one artifact. Files are
// processed concurrently; each failed file is logged and left out of the
// collection, and the collection is always handed to the serializer.
type Aggregator struct {
	opts       AggregatorOptions
	fs         afero.Fs
	enumerator *Enumerator
	normalizer Normalizer
	extractor  Extractor
	serializer Serializer
	logger     interfaces.Logger
}

// NewAggregator wires an aggregator. Missing collaborators fall back to the
// OS filesystem, the svgo engine and a simple mode extractor.
func NewAggregator(opts AggregatorOptions, deps AggregatorDeps) *Aggregator {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Enumerator == nil {
		deps.Enumerator = NewEnumerator(deps.FS)
	}
	if deps.Normalizer == nil {
		deps.Normalizer = NewEngineNormalizer(nil)
	}
	if deps.Extractor == nil {
		deps.Extractor = NewExtractor(ModeSimple)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &Aggregator{
		opts:       opts,
		fs:         deps.FS,
		enumerator: deps.Enumerator,
		normalizer: deps.Normalizer,
		extractor:  deps.Extractor,
		serializer: deps.Serializer,
		logger:     deps.Logger,
	}
}

type fileOutcome struct {
	record IconRecord
	err    *FileError
}

// Aggregate processes dir and reports the outcome. It never returns an error;
// directory failures are recorded on the report.
func (a *Aggregator) Aggregate(ctx context.Context, dir SourceDirectory) DirectoryReport {
	started := time.Now()
	report := DirectoryReport{Directory: dir}
	ctx = logging.WithDirectory(ctx, dir.Name)
	logger := logging.Scoped(ctx, a.logger)

	files, err := a.enumerator.Files(ctx, dir)
	if err != nil {
		report.Err = &DirectoryError{Directory: dir.Path, Stage: StageList, Err: err}
		report.Duration = time.Since(started)
		logger.Error("svglist.directory.list_failed", "path", dir.Path, "error", err)
		return report
	}

	outcomes := make([]fileOutcome, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.workerCount(len(files)))
	for i, file := range files {
		group.Go(func() error {
			outcomes[i] = a.processFile(groupCtx, file)
			return nil
		})
	}
	_ = group.Wait()

	collection := NewCollection(dir.Name)
	for i, outcome := range outcomes {
		if outcome.err != nil {
			report.Failures = append(report.Failures, outcome.err)
			logging.FileLogger(logger, "", files[i].FilePath, files[i].Key).
				Error("svglist.directory.file_failed",
					"path", dir.Path,
					logging.FieldStage, string(outcome.err.Stage),
					"error", outcome.err.Err,
				)
			continue
		}
		if collection.Set(files[i].Key, outcome.record) {
			report.Duplicates = append(report.Duplicates, files[i].Key)
			logger.Warn("svglist.directory.duplicate_key",
				logging.FieldKey, files[i].Key,
				logging.FieldFile, files[i].FilePath,
			)
		}
	}
	report.Entries = collection.Len()

	if a.serializer == nil {
		report.Duration = time.Since(started)
		return report
	}
	artifact, err := a.serializer.Serialize(ctx, dir.Name, collection)
	report.Duration = time.Since(started)
	if err != nil {
		stage := StageSerialize
		if errors.Is(err, ErrArtifactWrite) {
			stage = StageWrite
		}
		report.Err = &DirectoryError{Directory: dir.Path, Stage: stage, Err: err}
		logger.Error("svglist.directory.serialize_failed", logging.FieldStage, string(stage), "error", err)
		return report
	}
	report.Artifact = artifact
	logger.Info("svglist.directory.complete",
		"artifact", artifact,
		"entries", report.Entries,
		"failures", len(report.Failures),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report
}

func (a *Aggregator) processFile(ctx context.Context, file CandidateFile) fileOutcome {
	fail := func(stage Stage, err error) fileOutcome {
		return fileOutcome{err: &FileError{
			Directory: file.DirectoryPath,
			File:      file.FilePath,
			Key:       file.Key,
			Stage:     stage,
			Err:       err,
		}}
	}

	if err := ctx.Err(); err != nil {
		return fail(StageRead, err)
	}
	raw, err := afero.ReadFile(a.fs, file.FilePath)
	if err != nil {
		return fail(StageRead, err)
	}
	normalized, err := a.normalizer.Normalize(ctx, NormalizeRequest{
		Document: string(raw),
		Plugins:  a.opts.Plugins,
		PathHint: PathHint(file.DirectoryPath),
	})
	if err != nil {
		return fail(StageNormalize, err)
	}
	record, err := a.extractor.Extract(normalized)
	if err != nil {
		return fail(StageExtract, err)
	}
	return fileOutcome{record: record}
}

func (a *Aggregator) workerCount(files int) int {
	workers := a.opts.Concurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if files > 0 && workers > files {
		workers = files
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
