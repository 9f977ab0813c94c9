// Package svgo is a small SVG optimizer modelled on the svgo plugin chain. It
// parses documents strictly, applies an ordered list of tree transforms and
// renders compact markup.
package svgo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRootRemoved is returned when a plugin removes the document element.
var ErrRootRemoved = errors.New("svgo: plugin removed the svg root")

// Options configures one Optimize call.
type Options struct {
	// Plugins is applied in order. Inactive and unknown entries are skipped.
	Plugins []PluginSpec
	// Path identifies the source document in error messages.
	Path string
}

// Result carries the optimized markup.
type Result struct {
	Data string
	// Skipped lists active plugins the engine does not implement.
	Skipped []string
}

// Engine applies plugin chains. The zero value is not usable; call New.
type Engine struct {
	plugins map[string]Plugin
}

// New returns an engine backed by the built-in plugin registry.
func New() *Engine {
	plugins := make(map[string]Plugin, len(registry))
	for name, plugin := range registry {
		plugins[name] = plugin
	}
	return &Engine{plugins: plugins}
}

// Optimize parses src, runs the plugin chain and renders the result.
func (e *Engine) Optimize(src string, opts Options) (Result, error) {
	doc, err := Parse(src)
	if err != nil {
		return Result{}, e.wrap(opts.Path, err)
	}

	var skipped []string
	for _, spec := range opts.Plugins {
		if !spec.Active {
			continue
		}
		plugin, ok := e.plugins[spec.Name]
		if !ok {
			skipped = append(skipped, spec.Name)
			continue
		}
		if err := plugin.Apply(doc, spec.Params); err != nil {
			return Result{}, e.wrap(opts.Path, fmt.Errorf("plugin %s: %w", spec.Name, err))
		}
		if doc.Root() == nil {
			return Result{}, e.wrap(opts.Path, fmt.Errorf("plugin %s: %w", spec.Name, ErrRootRemoved))
		}
	}

	return Result{Data: Render(doc), Skipped: skipped}, nil
}

func (e *Engine) wrap(path string, err error) error {
	if strings.TrimSpace(path) == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
