package iconset

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/internal/svgo"
	"github.com/goliatone/go-svglist/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Config captures the resolved run settings consumed by the service.
type Config struct {
	SourceRoot           string
	DestRoot             string
	Plugins              []svgo.PluginSpec
	Mode                 AttributeMode
	DirectoryConcurrency int
	FileConcurrency      int
}

// DestinationPreparer creates the destination root before any directory is
// aggregated.
type DestinationPreparer interface {
	EnsureDir(ctx context.Context, path string) error
}

// ServiceDeps lists the collaborators of a Service.
type ServiceDeps struct {
	FS          afero.Fs
	Destination DestinationPreparer
	Normalizer  Normalizer
	Extractor   Extractor
	Serializer  Serializer
	Logger      interfaces.Logger
	// IDGenerator overrides run id generation (tests).
	IDGenerator func() uuid.UUID
}

// Service runs the pipeline across every directory of the source root.
type Service interface {
	Run(ctx context.Context) (*RunReport, error)
}

type service struct {
	cfg         Config
	destination DestinationPreparer
	enumerator  *Enumerator
	aggregator  *Aggregator
	logger      interfaces.Logger
	newID       func() uuid.UUID
}

type fsDestination struct {
	fs afero.Fs
}

func (d fsDestination) EnsureDir(_ context.Context, path string) error {
	return d.fs.MkdirAll(path, 0o755)
}

// NewService wires the orchestrator.
func NewService(cfg Config, deps ServiceDeps) Service {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.Extractor == nil {
		deps.Extractor = NewExtractor(cfg.Mode)
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = uuid.New
	}
	if deps.Destination == nil {
		deps.Destination = fsDestination{fs: deps.FS}
	}
	enumerator := NewEnumerator(deps.FS)
	return &service{
		cfg:         cfg,
		destination: deps.Destination,
		enumerator:  enumerator,
		aggregator: NewAggregator(AggregatorOptions{
			Plugins:     cfg.Plugins,
			Concurrency: cfg.FileConcurrency,
		}, AggregatorDeps{
			FS:         deps.FS,
			Enumerator: enumerator,
			Normalizer: deps.Normalizer,
			Extractor:  deps.Extractor,
			Serializer: deps.Serializer,
			Logger:     deps.Logger,
		}),
		logger: deps.Logger,
		newID:  deps.IDGenerator,
	}
}

// Run enumerates the source root and aggregates every directory. Only an
// unreadable source root fails the run; file and directory failures are
// reported on the RunReport.
func (s *service) Run(ctx context.Context) (*RunReport, error) {
	started := time.Now()
	report := &RunReport{RunID: s.newID()}
	ctx = logging.WithRun(ctx, report.RunID.String())
	logger := logging.Scoped(ctx, s.logger)

	dirs, err := s.enumerator.Directories(ctx, s.cfg.SourceRoot)
	if err != nil {
		logger.Error("svglist.run.source_unavailable", "source", s.cfg.SourceRoot, "error", err)
		return nil, err
	}

	if skipped := svgo.Unsupported(s.cfg.Plugins); len(skipped) > 0 {
		report.SkippedPlugins = skipped
		logger.Warn("svglist.run.plugins_skipped", "plugins", strings.Join(skipped, ","))
	}

	if err := s.destination.EnsureDir(ctx, s.cfg.DestRoot); err != nil {
		logger.Warn("svglist.run.ensure_destination_failed", "dest", s.cfg.DestRoot, "error", err)
	}

	logger.Info("svglist.run.start",
		"source", s.cfg.SourceRoot,
		"dest", s.cfg.DestRoot,
		"directories", len(dirs),
		"mode", s.cfg.Mode.String(),
	)

	report.Directories = make([]DirectoryReport, len(dirs))
	group := new(errgroup.Group)
	group.SetLimit(s.workerCount(len(dirs)))
	for i, dir := range dirs {
		group.Go(func() error {
			report.Directories[i] = s.aggregator.Aggregate(ctx, dir)
			return nil
		})
	}
	_ = group.Wait()

	report.tally()
	report.Duration = time.Since(started)
	logger.Info("svglist.run.complete",
		"artifacts", report.Artifacts,
		"entries", report.Entries,
		"file_failures", report.FileFailures,
		"directory_failures", report.DirectoryFailures,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

func (s *service) workerCount(dirs int) int {
	workers := s.cfg.DirectoryConcurrency
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if dirs > 0 && workers > dirs {
		workers = dirs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
