package svgo

import (
	"regexp"
	"slices"
	"strings"
)

var editorNamespaces = []string{
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://inkscape.sourceforge.net/DTD/sodipodi-0.dtd",
	"http://www.inkscape.org/namespaces/inkscape",
	"http://www.bohemiancoding.com/sketch/ns",
	"http://ns.adobe.com/AdobeIllustrator/10.0/",
	"http://ns.adobe.com/Graphs/1.0/",
	"http://ns.adobe.com/AdobeSVGViewerExtensions/3.0/",
	"http://ns.adobe.com/Variables/1.0/",
	"http://ns.adobe.com/SaveForWeb/1.0/",
	"http://ns.adobe.com/Extensibility/1.0/",
	"http://ns.adobe.com/Flows/1.0/",
	"http://ns.adobe.com/ImageReplacement/1.0/",
	"http://ns.adobe.com/GenericCustomNamespace/1.0/",
	"http://ns.adobe.com/XPath/1.0/",
	"http://schemas.microsoft.com/visio/2003/SVGExtensions/",
	"http://taptrix.com/vectorillustrator/svg_extensions",
	"http://www.figma.com/figma/ns",
	"http://purl.org/dc/elements/1.1/",
	"http://creativecommons.org/ns#",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"http://www.serif.com/",
	"http://www.vector.evaxdesign.sk",
}

var (
	whitespaceRun = regexp.MustCompile(`\s{2,}`)
	rasterHref    = regexp.MustCompile(`(\.|image/)(jpe?g|png|gif)`)
)

var emptyContainers = map[string]struct{}{
	"a": {}, "defs": {}, "g": {}, "marker": {}, "mask": {},
	"missing-glyph": {}, "pattern": {}, "switch": {}, "symbol": {},
}

func cleanupAttrs(doc *Document, params Params) error {
	newlines := params.boolValue("newlines", true)
	trim := params.boolValue("trim", true)
	spaces := params.boolValue("spaces", true)
	doc.Walk(func(node, _ *Node) bool {
		for i := range node.Attrs {
			value := node.Attrs[i].Value
			if newlines {
				value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
			}
			if trim {
				value = strings.TrimSpace(value)
			}
			if spaces {
				value = whitespaceRun.ReplaceAllString(value, " ")
			}
			node.Attrs[i].Value = value
		}
		return true
	})
	return nil
}

func removeDoctype(doc *Document, _ Params) error {
	doc.Filter(func(node, parent *Node) bool {
		return parent == nil && node.Kind == DirectiveNode &&
			strings.HasPrefix(strings.ToUpper(strings.TrimSpace(node.Data)), "DOCTYPE")
	})
	return nil
}

func removeXMLProcInst(doc *Document, _ Params) error {
	doc.Filter(func(node, _ *Node) bool {
		return node.Kind == ProcInstNode && node.Name == "xml"
	})
	return nil
}

func removeComments(doc *Document, _ Params) error {
	doc.Filter(func(node, _ *Node) bool {
		return node.Kind == CommentNode && !strings.HasPrefix(node.Data, "!")
	})
	return nil
}

func removeElements(names ...string) func(*Document, Params) error {
	return func(doc *Document, _ Params) error {
		doc.Filter(func(node, _ *Node) bool {
			return node.IsElement(names...)
		})
		return nil
	}
}

func removeUselessDefs(doc *Document, _ Params) error {
	doc.Walk(func(node, _ *Node) bool {
		if !node.IsElement("defs") {
			return true
		}
		kept := node.Children[:0]
		for _, child := range node.Children {
			if child.Kind != ElementNode {
				continue
			}
			if _, ok := child.Attr("id"); ok || child.IsElement("style") {
				kept = append(kept, child)
			}
		}
		node.Children = kept
		return false
	})
	doc.Filter(func(node, _ *Node) bool {
		return node.IsElement("defs") && len(node.Children) == 0
	})
	return nil
}

func removeEditorsNSData(doc *Document, _ Params) error {
	root := doc.Root()
	prefixes := map[string]struct{}{}
	for _, attr := range root.Attrs {
		if attr.Prefix != "xmlns" {
			continue
		}
		if slices.Contains(editorNamespaces, attr.Value) {
			prefixes[attr.Name] = struct{}{}
		}
	}
	if len(prefixes) == 0 {
		return nil
	}
	root.RemoveAttrs(func(attr Attr) bool {
		_, ok := prefixes[attr.Name]
		return attr.Prefix == "xmlns" && ok
	})
	doc.Filter(func(node, _ *Node) bool {
		if node.Kind != ElementNode {
			return false
		}
		if _, ok := prefixes[node.Prefix]; ok {
			return true
		}
		node.RemoveAttrs(func(attr Attr) bool {
			_, ok := prefixes[attr.Prefix]
			return ok
		})
		return false
	})
	return nil
}

func removeEmptyAttrs(doc *Document, _ Params) error {
	doc.Walk(func(node, _ *Node) bool {
		if node.Kind == ElementNode {
			node.RemoveAttrs(func(attr Attr) bool {
				return attr.Value == "" && !isConditionalAttr(attr)
			})
		}
		return true
	})
	return nil
}

func isConditionalAttr(attr Attr) bool {
	switch attr.QName() {
	case "requiredExtensions", "requiredFeatures", "systemLanguage":
		return true
	}
	return false
}

func removeHiddenElems(doc *Document, _ Params) error {
	doc.Filter(func(node, parent *Node) bool {
		if node.Kind != ElementNode || parent == nil {
			return false
		}
		if value, ok := node.Attr("display"); ok && strings.TrimSpace(value) == "none" {
			return true
		}
		if value, ok := node.Attr("opacity"); ok && isZero(value) {
			return true
		}
		switch {
		case node.IsElement("path"):
			d, ok := node.Attr("d")
			return !ok || isBlank(d)
		case node.IsElement("circle"):
			return attrIsZero(node, "r")
		case node.IsElement("ellipse"):
			return attrIsZero(node, "rx") || attrIsZero(node, "ry")
		case node.IsElement("rect"):
			return attrIsZero(node, "width") || attrIsZero(node, "height")
		case node.IsElement("polyline", "polygon"):
			points, ok := node.Attr("points")
			return !ok || isBlank(points)
		}
		return false
	})
	return nil
}

func removeEmptyText(doc *Document, _ Params) error {
	doc.Filter(func(node, _ *Node) bool {
		switch {
		case node.IsElement("text", "tspan"):
			return len(node.Children) == 0
		case node.IsElement("tref"):
			_, ok := hrefValue(node)
			return !ok
		}
		return false
	})
	return nil
}

func removeEmptyContainers(doc *Document, _ Params) error {
	doc.Filter(func(node, parent *Node) bool {
		if node.Kind != ElementNode || node.Prefix != "" || parent == nil {
			return false
		}
		if _, ok := emptyContainers[node.Name]; !ok {
			return false
		}
		if len(node.ElementChildren()) > 0 {
			return false
		}
		if node.Name == "g" {
			if _, ok := node.Attr("filter"); ok {
				return false
			}
		}
		if node.Name == "pattern" && len(node.Attrs) > 0 {
			return false
		}
		return true
	})
	return nil
}

func removeViewBox(doc *Document, _ Params) error {
	root := doc.Root()
	viewBox, ok := root.Attr("viewBox")
	if !ok {
		return nil
	}
	width, hasWidth := root.Attr("width")
	height, hasHeight := root.Attr("height")
	if !hasWidth || !hasHeight {
		return nil
	}
	fields := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
	if len(fields) != 4 || !isZero(fields[0]) || !isZero(fields[1]) {
		return nil
	}
	if trimPx(width) == fields[2] && trimPx(height) == fields[3] {
		root.RemoveAttrs(func(attr Attr) bool { return attr.Prefix == "" && attr.Name == "viewBox" })
	}
	return nil
}

func removeRasterImages(doc *Document, _ Params) error {
	doc.Filter(func(node, _ *Node) bool {
		if !node.IsElement("image") {
			return false
		}
		href, ok := hrefValue(node)
		return ok && rasterHref.MatchString(href)
	})
	return nil
}

func removeUnusedNS(doc *Document, _ Params) error {
	root := doc.Root()
	declared := map[string]struct{}{}
	for _, attr := range root.Attrs {
		if attr.Prefix == "xmlns" {
			declared[attr.Name] = struct{}{}
		}
	}
	if len(declared) == 0 {
		return nil
	}
	doc.Walk(func(node, _ *Node) bool {
		if node.Kind != ElementNode {
			return false
		}
		delete(declared, node.Prefix)
		for _, attr := range node.Attrs {
			if attr.Prefix != "xmlns" {
				delete(declared, attr.Prefix)
			}
		}
		return true
	})
	root.RemoveAttrs(func(attr Attr) bool {
		_, unused := declared[attr.Name]
		return attr.Prefix == "xmlns" && unused
	})
	return nil
}

func cleanupEnableBackground(doc *Document, _ Params) error {
	doc.Walk(func(node, _ *Node) bool {
		if !node.IsElement("svg", "mask", "pattern") {
			return true
		}
		value, ok := node.Attr("enable-background")
		if !ok {
			return true
		}
		width, _ := node.Attr("width")
		height, _ := node.Attr("height")
		fields := strings.Fields(value)
		if len(fields) == 5 && fields[0] == "new" && isZero(fields[1]) && isZero(fields[2]) &&
			fields[3] == trimPx(width) && fields[4] == trimPx(height) {
			node.RemoveAttrs(func(attr Attr) bool { return attr.Prefix == "" && attr.Name == "enable-background" })
		}
		return true
	})
	return nil
}

func hrefValue(node *Node) (string, bool) {
	for _, attr := range node.Attrs {
		if attr.Name == "href" && (attr.Prefix == "" || attr.Prefix == "xlink") {
			return attr.Value, true
		}
	}
	return "", false
}

func attrIsZero(node *Node, name string) bool {
	value, ok := node.Attr(name)
	return ok && isZero(value)
}

func trimPx(value string) string {
	return strings.TrimSuffix(strings.TrimSpace(value), "px")
}
