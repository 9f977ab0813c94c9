package di

import (
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-svglist/internal/commands"
	generatecmd "github.com/goliatone/go-svglist/internal/commands/generate"
	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/internal/logging/console"
	"github.com/goliatone/go-svglist/internal/logging/gologger"
	"github.com/goliatone/go-svglist/internal/output"
	"github.com/goliatone/go-svglist/internal/runtimeconfig"
	"github.com/goliatone/go-svglist/internal/svgo"
	"github.com/goliatone/go-svglist/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Container wires the pipeline collaborators for one configuration.
type Container struct {
	Config runtimeconfig.Config

	fs             afero.Fs
	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	formatter      output.Formatter
	engine         *svgo.Engine
	idGenerator    func() uuid.UUID

	generateHandler *generatecmd.GenerateHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithFS overrides the filesystem used for sources and artifacts.
func WithFS(fs afero.Fs) Option {
	return func(c *Container) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithLoggerProvider replaces the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter redirects console logging.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithFormatter overrides the code form formatting pass.
func WithFormatter(formatter output.Formatter) Option {
	return func(c *Container) {
		if formatter != nil {
			c.formatter = formatter
		}
	}
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(c *Container) {
		if fn != nil {
			c.idGenerator = fn
		}
	}
}

// NewContainer validates cfg and wires the pipeline.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config:    cfg,
		fs:        afero.NewOsFs(),
		logWriter: os.Stderr,
		formatter: output.NewEsbuildFormatter(),
		engine:    svgo.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}

	c.generateHandler = generatecmd.NewGenerateHandler(
		c.PipelineFactory(),
		commands.FamilyLogger(c.loggerProvider, "generate"),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  c.Config.Logging.Level,
			Format: c.Config.Logging.Format,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, ok := console.ParseLevel(c.Config.Logging.Level)
		if !ok {
			level = console.LevelInfo
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: level,
		})
	}
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// GenerateHandler returns the generate command handler.
func (c *Container) GenerateHandler() *generatecmd.GenerateHandler {
	return c.generateHandler
}

// PipelineFactory builds a fresh pipeline per run so every run gets its own
// serializer bound to the run's destination and format.
func (c *Container) PipelineFactory() generatecmd.ServiceFactory {
	return func(cfg iconset.Config, format output.Format) iconset.Service {
		writer := output.NewArtifactWriter(c.fs, logging.OutputLogger(c.loggerProvider))
		serializer := output.NewSerializer(
			output.Config{DestRoot: cfg.DestRoot, Format: format},
			writer,
			output.WithFormatter(c.formatter),
			output.WithLogger(logging.OutputLogger(c.loggerProvider)),
		)
		return iconset.NewService(cfg, iconset.ServiceDeps{
			FS:          c.fs,
			Destination: writer,
			Normalizer:  iconset.NewEngineNormalizer(c.engine),
			Serializer:  serializer,
			Logger:      logging.IconsetLogger(c.loggerProvider),
			IDGenerator: c.idGenerator,
		})
	}
}
