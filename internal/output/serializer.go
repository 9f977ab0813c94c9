package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/goliatone/go-svglist/internal/logging"
	"github.com/goliatone/go-svglist/internal/naming"
	"github.com/goliatone/go-svglist/pkg/interfaces"
	"github.com/tidwall/pretty"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Config configures a Serializer.
type Config struct {
	DestRoot string
	Format   Format
}

// Serializer renders collections and persists them under DestRoot.
type Serializer struct {
	cfg       Config
	writer    ArtifactWriter
	formatter Formatter
	logger    interfaces.Logger
}

// Option customises a Serializer.
type Option func(*Serializer)

// WithFormatter overrides the code form formatting pass.
func WithFormatter(formatter Formatter) Option {
	return func(s *Serializer) {
		if formatter != nil {
			s.formatter = formatter
		}
	}
}

// WithLogger sets the serializer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSerializer builds a serializer writing through writer.
func NewSerializer(cfg Config, writer ArtifactWriter, opts ...Option) *Serializer {
	if cfg.Format == "" {
		cfg.Format = FormatCode
	}
	s := &Serializer{
		cfg:       cfg,
		writer:    writer,
		formatter: NewEsbuildFormatter(),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Path returns the destination of the artifact for name. The file name is
// the normalized directory name; only the code binding needs the identifier
// form.
func (s *Serializer) Path(name string) string {
	base := naming.Key(name)
	if base == "" {
		base = naming.Identifier(name)
	}
	return filepath.Join(s.cfg.DestRoot, base+s.cfg.Format.Extension())
}

// Render returns the artifact text for collection without writing it.
func (s *Serializer) Render(name string, collection *iconset.Collection) (string, error) {
	document, err := encode(collection)
	if err != nil {
		return "", err
	}
	if s.cfg.Format == FormatJSON {
		return string(document), nil
	}

	ident := naming.Identifier(naming.Key(name))
	source := fmt.Sprintf("const %s = %s;\nexport default %s;\n", ident, bytes.TrimRight(document, "\n"), ident)
	formatted, err := s.formatter.Format(source)
	if err != nil {
		return "", err
	}
	return formatted, nil
}

// Serialize renders collection and writes it. The destination directory is
// expected to exist.
func (s *Serializer) Serialize(ctx context.Context, name string, collection *iconset.Collection) (string, error) {
	text, err := s.Render(name, collection)
	if err != nil {
		return "", err
	}
	path := s.Path(name)
	if err := s.writer.WriteFile(ctx, WriteRequest{
		Path:    path,
		Content: []byte(text),
		Format:  s.cfg.Format,
	}); err != nil {
		return "", fmt.Errorf("%w: %w", iconset.ErrArtifactWrite, err)
	}
	s.logger.Debug("svglist.output.written", "artifact", path, "entries", collection.Len())
	return path, nil
}

func encode(collection *iconset.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(collection); err != nil {
		return nil, fmt.Errorf("output: encode collection %s: %w", collection.Name, err)
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}
