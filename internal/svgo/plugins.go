package svgo

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidPlugin is returned when a plugin list entry cannot be decoded.
var ErrInvalidPlugin = errors.New("svgo: invalid plugin entry")

// Params carries plugin specific options.
type Params map[string]any

// PluginSpec is one entry of an ordered plugin list.
type PluginSpec struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Params Params `json:"params,omitempty"`
}

// Plugin is a single tree transform.
type Plugin struct {
	Name        string
	Description string
	Apply       func(doc *Document, params Params) error
}

var registry = map[string]Plugin{}

func register(name, description string, apply func(*Document, Params) error) {
	registry[name] = Plugin{Name: name, Description: description, Apply: apply}
}

// Supported lists every plugin the engine implements, sorted by name.
func Supported() []Plugin {
	out := make([]Plugin, 0, len(registry))
	for _, plugin := range registry {
		out = append(out, plugin)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unsupported returns the names of active specs the engine does not
// implement, in list order.
func Unsupported(specs []PluginSpec) []string {
	var out []string
	for _, spec := range specs {
		if !spec.Active {
			continue
		}
		if _, ok := registry[spec.Name]; !ok {
			out = append(out, spec.Name)
		}
	}
	return out
}

// DecodePlugins converts a loosely typed plugin list into specs. Entries may
// be a bare name, a single key object ({"removeTitle": true} or
// {"removeAttrs": {"attrs": "fill"}}) or an explicit
// {"name": ..., "active": ..., "params": ...} object.
func DecodePlugins(raw []any) ([]PluginSpec, error) {
	specs := make([]PluginSpec, 0, len(raw))
	for i, entry := range raw {
		spec, err := decodePlugin(entry)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %v", ErrInvalidPlugin, i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func decodePlugin(entry any) (PluginSpec, error) {
	switch v := entry.(type) {
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return PluginSpec{}, errors.New("empty plugin name")
		}
		return PluginSpec{Name: name, Active: true}, nil
	case PluginSpec:
		return v, nil
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			spec := PluginSpec{Name: strings.TrimSpace(name), Active: true}
			if active, ok := v["active"].(bool); ok {
				spec.Active = active
			}
			if params, ok := v["params"].(map[string]any); ok {
				spec.Params = Params(params)
			}
			if spec.Name == "" {
				return PluginSpec{}, errors.New("empty plugin name")
			}
			return spec, nil
		}
		if len(v) != 1 {
			return PluginSpec{}, fmt.Errorf("expected a single plugin key, got %d", len(v))
		}
		for name, value := range v {
			spec := PluginSpec{Name: strings.TrimSpace(name)}
			switch setting := value.(type) {
			case bool:
				spec.Active = setting
			case map[string]any:
				spec.Active = true
				spec.Params = Params(setting)
			case nil:
				spec.Active = true
			default:
				return PluginSpec{}, fmt.Errorf("plugin %q: unsupported setting %T", name, value)
			}
			return spec, nil
		}
	}
	return PluginSpec{}, fmt.Errorf("unsupported entry type %T", entry)
}

// DefaultPlugins returns the plugin list applied when a project does not
// provide its own.
func DefaultPlugins() []PluginSpec {
	on := func(name string) PluginSpec { return PluginSpec{Name: name, Active: true} }
	off := func(name string) PluginSpec { return PluginSpec{Name: name} }
	return []PluginSpec{
		on("cleanupAttrs"),
		on("removeDoctype"),
		on("removeXMLProcInst"),
		on("removeComments"),
		on("removeMetadata"),
		on("removeTitle"),
		on("removeDesc"),
		on("removeUselessDefs"),
		on("removeEditorsNSData"),
		on("removeEmptyAttrs"),
		on("removeHiddenElems"),
		on("removeEmptyText"),
		on("removeEmptyContainers"),
		off("removeViewBox"),
		on("cleanupEnableBackground"),
		on("convertStyleToAttrs"),
		on("convertColors"),
		on("convertPathData"),
		on("convertTransform"),
		on("removeUnknownsAndDefaults"),
		on("removeNonInheritableGroupAttrs"),
		on("removeUselessStrokeAndFill"),
		on("removeUnusedNS"),
		on("cleanupIDs"),
		on("cleanupNumericValues"),
		on("moveElemsAttrsToGroup"),
		on("moveGroupAttrsToElems"),
		on("collapseGroups"),
		off("removeRasterImages"),
		on("mergePaths"),
		on("convertShapeToPath"),
		on("sortAttrs"),
		on("removeDimensions"),
		{Name: "removeAttrs", Active: true, Params: Params{"attrs": "(stroke|fill)"}},
	}
}

func (p Params) stringValue(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	value, ok := p[key].(string)
	return value, ok
}

func (p Params) boolValue(key string, fallback bool) bool {
	if p == nil {
		return fallback
	}
	if value, ok := p[key].(bool); ok {
		return value
	}
	return fallback
}

func (p Params) stringList(key string) []string {
	if p == nil {
		return nil
	}
	switch value := p[key].(type) {
	case string:
		return []string{value}
	case []string:
		return append([]string(nil), value...)
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
