package iconset

import (
	"context"
	"path/filepath"

	"github.com/goliatone/go-svglist/internal/svgo"
)

// optimizedHint is the synthetic path handed to the transform engine for
// documents of a directory.
const optimizedHint = ".optimized"

// NormalizeRequest carries one document through the normalizer.
type NormalizeRequest struct {
	Document string
	Plugins  []svgo.PluginSpec
	PathHint string
}

// Normalizer canonicalizes raw SVG markup.
type Normalizer interface {
	Normalize(ctx context.Context, req NormalizeRequest) (string, error)
}

// EngineNormalizer adapts the svgo engine to the Normalizer contract.
type EngineNormalizer struct {
	engine *svgo.Engine
}

// NewEngineNormalizer wraps engine; a nil engine selects the built-in registry.
func NewEngineNormalizer(engine *svgo.Engine) *EngineNormalizer {
	if engine == nil {
		engine = svgo.New()
	}
	return &EngineNormalizer{engine: engine}
}

func (n *EngineNormalizer) Normalize(ctx context.Context, req NormalizeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := n.engine.Optimize(req.Document, svgo.Options{Plugins: req.Plugins, Path: req.PathHint})
	if err != nil {
		return "", err
	}
	return res.Data, nil
}

// PathHint returns the synthetic engine path for documents of dir.
func PathHint(dir string) string {
	return filepath.Join(dir, optimizedHint)
}
