package iconset

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-svglist/internal/naming"
	"golang.org/x/net/html"
)

// Extractor derives an IconRecord from normalized markup.
type Extractor interface {
	Extract(document string) (IconRecord, error)
}

// HTMLExtractor parses documents with the HTML5 parser, which treats svg as
// foreign content and tolerates whatever the normalizer emits.
type HTMLExtractor struct {
	Mode AttributeMode
}

// NewExtractor returns an extractor for mode.
func NewExtractor(mode AttributeMode) *HTMLExtractor {
	return &HTMLExtractor{Mode: mode}
}

// Extract returns the viewBox of the first svg element and one shape per path
// element in document order.
func (x *HTMLExtractor) Extract(document string) (IconRecord, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return IconRecord{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	svg := findElement(root, "svg")
	if svg == nil {
		return IconRecord{}, ErrMissingRoot
	}

	record := IconRecord{Shapes: []Shape{}}
	if viewbox, ok := attrFold(svg, "viewbox"); ok {
		record.Viewbox = &viewbox
	}

	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "path" {
			return
		}
		record.Shapes = append(record.Shapes, x.shape(n))
	})
	return record, nil
}

func (x *HTMLExtractor) shape(n *html.Node) Shape {
	if x.Mode != ModeAttributed {
		if d, ok := attrFold(n, "d"); ok {
			return PathShape(&d)
		}
		return PathShape(nil)
	}

	attrs := make([]ShapeAttr, 0, len(n.Attr))
	seen := make(map[string]struct{}, len(n.Attr))
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, "fill") {
			continue
		}
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		key := naming.Attribute(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		attrs = append(attrs, ShapeAttr{Name: key, Value: attr.Val})
	}
	return AttributedShape(attrs)
}

func findElement(n *html.Node, name string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.Data == name {
			found = c
		}
	})
	return found
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// attrFold looks an attribute up ignoring case; the HTML parser rewrites some
// SVG attribute names (viewbox becomes viewBox).
func attrFold(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}
