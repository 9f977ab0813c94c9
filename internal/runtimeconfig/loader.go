package runtimeconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// ConfigInvalidCode tags configuration failures raised by the loader.
const ConfigInvalidCode = "SVGLIST_CONFIG_INVALID"

// envKeys maps environment suffixes onto koanf paths.
var envKeys = map[string]string{
	"src":                     "src",
	"dest":                    "dest",
	"format":                  "format",
	"pass_all_attributes":     "passAllAttributes",
	"concurrency_directories": "concurrency.directories",
	"concurrency_files":       "concurrency.files",
	"logging_provider":        "logging.provider",
	"logging_level":           "logging.level",
	"logging_format":          "logging.format",
}

// Loader resolves a Config from defaults, the rc file and the environment,
// in that order of precedence (lowest first).
type Loader struct {
	fs      afero.Fs
	workDir string
	environ func() []string
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithFS reads configuration files from fs.
func WithFS(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithWorkDir anchors relative paths (config file, src, dest) to dir.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.workDir = dir
	}
}

// WithEnviron overrides the environment snapshot used for overrides.
func WithEnviron(fn func() []string) LoaderOption {
	return func(l *Loader) {
		if fn != nil {
			l.environ = fn
		}
	}
}

// NewLoader builds a loader over the OS filesystem and process environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		environ: os.Environ,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			l.workDir = wd
		}
	}
	return l
}

// Load reads the configuration at path (DefaultFileName when empty), applies
// environment overrides, validates and resolves paths. Every failure is a
// go-errors validation error tagged ConfigInvalidCode.
func (l *Loader) Load(ctx context.Context, path string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	cfg, err := l.load(path)
	if err != nil {
		return Config{}, wrapConfigError(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, wrapConfigError(err)
	}
	return cfg.Resolve(l.workDir), nil
}

func (l *Loader) load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	document, err := l.readFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := k.Load(rawMap(document), nil); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   l.environ,
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	return cfg, nil
}

func (l *Loader) readFile(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	if !filepath.IsAbs(path) && l.workDir != "" {
		path = filepath.Join(l.workDir, path)
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileMissing, path, err)
	}
	var document map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFileInvalid, path, err)
	}
	if document == nil {
		return nil, fmt.Errorf("%w: %s: expected an object", ErrConfigFileInvalid, path)
	}
	return document, nil
}

func transformEnv(key, value string) (string, any) {
	suffix := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	path, ok := envKeys[suffix]
	if !ok {
		return "", nil
	}
	return path, value
}

func wrapConfigError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "svglist configuration invalid").
		WithTextCode(ConfigInvalidCode)
}

// rawMap is a koanf.Provider adapter for an already decoded document.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("ReadBytes not implemented")
}
