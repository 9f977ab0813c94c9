package svgo

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

func init() {
	register("cleanupAttrs", "collapse whitespace and newlines in attribute values", cleanupAttrs)
	register("removeDoctype", "remove the doctype declaration", removeDoctype)
	register("removeXMLProcInst", "remove the xml processing instruction", removeXMLProcInst)
	register("removeComments", "remove comments, keeping <!--! ... --> notices", removeComments)
	register("removeMetadata", "remove <metadata> elements", removeElements("metadata"))
	register("removeTitle", "remove <title> elements", removeElements("title"))
	register("removeDesc", "remove <desc> elements", removeElements("desc"))
	register("removeUselessDefs", "remove <defs> children without an id", removeUselessDefs)
	register("removeEditorsNSData", "remove editor namespaces, elements and attributes", removeEditorsNSData)
	register("removeEmptyAttrs", "remove attributes with empty values", removeEmptyAttrs)
	register("removeHiddenElems", "remove hidden and zero sized elements", removeHiddenElems)
	register("removeEmptyText", "remove empty text elements", removeEmptyText)
	register("removeEmptyContainers", "remove empty container elements", removeEmptyContainers)
	register("removeViewBox", "remove viewBox when it matches width and height", removeViewBox)
	register("removeRasterImages", "remove embedded raster images", removeRasterImages)
	register("removeUnusedNS", "remove unused namespace declarations", removeUnusedNS)
	register("cleanupEnableBackground", "remove enable-background matching the element size", cleanupEnableBackground)
	register("convertStyleToAttrs", "move presentation properties from style to attributes", convertStyleToAttrs)
	register("collapseGroups", "unwrap groups that carry no information", collapseGroups)
	register("convertShapeToPath", "convert basic shapes to <path>", convertShapeToPath)
	register("sortAttrs", "sort element attributes", sortAttrs)
	register("removeDimensions", "replace width and height with a viewBox", removeDimensions)
	register("removeAttrs", "remove attributes matching elem:attr:value patterns", removeAttrs)
}

var presentationAttrs = map[string]struct{}{
	"clip-path": {}, "clip-rule": {}, "color": {}, "display": {}, "fill": {},
	"fill-opacity": {}, "fill-rule": {}, "filter": {}, "font-family": {},
	"font-size": {}, "font-style": {}, "font-weight": {}, "mask": {},
	"opacity": {}, "paint-order": {}, "shape-rendering": {}, "stop-color": {},
	"stop-opacity": {}, "stroke": {}, "stroke-dasharray": {},
	"stroke-dashoffset": {}, "stroke-linecap": {}, "stroke-linejoin": {},
	"stroke-miterlimit": {}, "stroke-opacity": {}, "stroke-width": {},
	"text-anchor": {}, "vector-effect": {}, "visibility": {},
}

var attrOrder = []string{"id", "width", "height", "x", "x1", "x2", "y", "y1", "y2", "cx", "cy", "r", "fill", "stroke", "marker", "d", "points"}

var groupBlockers = []string{"id", "class", "style", "clip-path", "mask", "filter"}

var numberList = regexp.MustCompile(`[\s,]+`)

func convertStyleToAttrs(doc *Document, _ Params) error {
	doc.Walk(func(node, _ *Node) bool {
		if node.Kind != ElementNode {
			return false
		}
		style, ok := node.Attr("style")
		if !ok {
			return true
		}
		var rest []string
		for _, declaration := range strings.Split(style, ";") {
			declaration = strings.TrimSpace(declaration)
			if declaration == "" {
				continue
			}
			name, value, found := strings.Cut(declaration, ":")
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			_, presentation := presentationAttrs[name]
			if !found || !presentation || strings.Contains(value, "!important") {
				rest = append(rest, declaration)
				continue
			}
			node.SetAttr(name, value)
		}
		if len(rest) == 0 {
			node.RemoveAttrs(func(attr Attr) bool { return attr.Prefix == "" && attr.Name == "style" })
		} else {
			node.SetAttr("style", strings.Join(rest, ";"))
		}
		return true
	})
	return nil
}

func collapseGroups(doc *Document, _ Params) error {
	doc.Replace(func(node, parent *Node) []*Node {
		if parent == nil || !node.IsElement("g") {
			return nil
		}
		if len(node.Attrs) == 0 {
			return node.Children
		}
		children := node.ElementChildren()
		if len(children) != 1 || len(children) != len(nonBlank(node.Children)) {
			return nil
		}
		for _, name := range groupBlockers {
			if _, ok := node.Attr(name); ok {
				return nil
			}
		}
		child := children[0]
		for _, attr := range node.Attrs {
			for _, existing := range child.Attrs {
				if existing.QName() == attr.QName() {
					return nil
				}
			}
		}
		child.Attrs = append(append([]Attr(nil), node.Attrs...), child.Attrs...)
		return []*Node{child}
	})
	return nil
}

func convertShapeToPath(doc *Document, params Params) error {
	convertArcs := params.boolValue("convertArcs", false)
	doc.Walk(func(node, _ *Node) bool {
		if node.Kind != ElementNode || node.Prefix != "" {
			return node.Kind == ElementNode
		}
		var (
			d      string
			remove []string
			ok     bool
		)
		switch node.Name {
		case "rect":
			d, ok = rectPath(node)
			remove = []string{"x", "y", "width", "height"}
		case "line":
			d, ok = linePath(node)
			remove = []string{"x1", "y1", "x2", "y2"}
		case "polyline", "polygon":
			d, ok = polyPath(node, node.Name == "polygon")
			remove = []string{"points"}
		case "circle":
			if convertArcs {
				d, ok = ellipsePath(node, "r", "r")
				remove = []string{"cx", "cy", "r"}
			}
		case "ellipse":
			if convertArcs {
				d, ok = ellipsePath(node, "rx", "ry")
				remove = []string{"cx", "cy", "rx", "ry"}
			}
		}
		if !ok {
			return true
		}
		node.RemoveAttrs(func(attr Attr) bool {
			if attr.Prefix != "" {
				return false
			}
			for _, name := range remove {
				if attr.Name == name {
					return true
				}
			}
			return false
		})
		node.Name = "path"
		node.SetAttr("d", d)
		return true
	})
	return nil
}

func rectPath(node *Node) (string, bool) {
	if _, ok := node.Attr("rx"); ok {
		return "", false
	}
	if _, ok := node.Attr("ry"); ok {
		return "", false
	}
	x, okX := numberAttr(node, "x", 0)
	y, okY := numberAttr(node, "y", 0)
	w, okW := numberAttr(node, "width", -1)
	h, okH := numberAttr(node, "height", -1)
	if !okX || !okY || !okW || !okH || w < 0 || h < 0 {
		return "", false
	}
	return fmt.Sprintf("M%s %sH%sV%sH%sz", num(x), num(y), num(x+w), num(y+h), num(x)), true
}

func linePath(node *Node) (string, bool) {
	x1, ok1 := numberAttr(node, "x1", 0)
	y1, ok2 := numberAttr(node, "y1", 0)
	x2, ok3 := numberAttr(node, "x2", 0)
	y2, ok4 := numberAttr(node, "y2", 0)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return "", false
	}
	return fmt.Sprintf("M%s %s %s %s", num(x1), num(y1), num(x2), num(y2)), true
}

func polyPath(node *Node, closed bool) (string, bool) {
	raw, ok := node.Attr("points")
	if !ok {
		return "", false
	}
	fields := numberList.Split(strings.TrimSpace(raw), -1)
	if len(fields) < 4 {
		return "", false
	}
	if len(fields)%2 == 1 {
		fields = fields[:len(fields)-1]
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return "", false
		}
		parts = append(parts, num(value))
	}
	d := "M" + strings.Join(parts, " ")
	if closed {
		d += "z"
	}
	return d, true
}

func ellipsePath(node *Node, rxName, ryName string) (string, bool) {
	cx, ok1 := numberAttr(node, "cx", 0)
	cy, ok2 := numberAttr(node, "cy", 0)
	rx, ok3 := numberAttr(node, rxName, -1)
	ry, ok4 := numberAttr(node, ryName, -1)
	if !ok1 || !ok2 || !ok3 || !ok4 || rx < 0 || ry < 0 {
		return "", false
	}
	return fmt.Sprintf("M%s %sA%s %s 0 1 0 %s %sA%s %s 0 1 0 %s %sz",
		num(cx-rx), num(cy), num(rx), num(ry), num(cx+rx), num(cy),
		num(rx), num(ry), num(cx-rx), num(cy)), true
}

func sortAttrs(doc *Document, _ Params) error {
	doc.Walk(func(node, _ *Node) bool {
		if node.Kind != ElementNode {
			return false
		}
		sort.SliceStable(node.Attrs, func(i, j int) bool {
			gi, ri := attrRank(node.Attrs[i])
			gj, rj := attrRank(node.Attrs[j])
			if gi != gj {
				return gi < gj
			}
			if ri != rj {
				return ri < rj
			}
			return node.Attrs[i].QName() < node.Attrs[j].QName()
		})
		return true
	})
	return nil
}

func attrRank(attr Attr) (int, int) {
	if attr.Prefix == "xmlns" || (attr.Prefix == "" && attr.Name == "xmlns") {
		return 0, 0
	}
	if attr.Prefix == "" {
		for i, name := range attrOrder {
			if attr.Name == name || strings.HasPrefix(attr.Name, name+"-") {
				return 1, i
			}
		}
	}
	return 2, 0
}

func removeDimensions(doc *Document, _ Params) error {
	root := doc.Root()
	if _, ok := root.Attr("viewBox"); !ok {
		width, okW := numberAttr(root, "width", -1)
		height, okH := numberAttr(root, "height", -1)
		if !okW || !okH || width < 0 || height < 0 {
			return nil
		}
		root.SetAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(width), num(height)))
	}
	root.RemoveAttrs(func(attr Attr) bool {
		return attr.Prefix == "" && (attr.Name == "width" || attr.Name == "height")
	})
	return nil
}

type attrPattern struct {
	elem  *regexp.Regexp
	attr  *regexp.Regexp
	value *regexp.Regexp
}

func removeAttrs(doc *Document, params Params) error {
	separator := ":"
	if value, ok := params.stringValue("elemSeparator"); ok && value != "" {
		separator = value
	}
	preserveCurrentColor := params.boolValue("preserveCurrentColor", false)

	var patterns []attrPattern
	for _, raw := range params.stringList("attrs") {
		pattern, err := compileAttrPattern(raw, separator)
		if err != nil {
			return err
		}
		patterns = append(patterns, pattern)
	}
	if len(patterns) == 0 {
		return nil
	}

	doc.Walk(func(node, _ *Node) bool {
		if node.Kind != ElementNode {
			return false
		}
		name := node.QName()
		node.RemoveAttrs(func(attr Attr) bool {
			if preserveCurrentColor && (attr.Name == "fill" || attr.Name == "stroke") &&
				strings.EqualFold(attr.Value, "currentColor") {
				return false
			}
			for _, pattern := range patterns {
				if pattern.elem.MatchString(name) && pattern.attr.MatchString(attr.QName()) && pattern.value.MatchString(attr.Value) {
					return true
				}
			}
			return false
		})
		return true
	})
	return nil
}

func compileAttrPattern(raw, separator string) (attrPattern, error) {
	parts := strings.Split(raw, separator)
	elem, attr, value := ".*", "", ".*"
	switch len(parts) {
	case 1:
		attr = parts[0]
	case 2:
		elem, attr = parts[0], parts[1]
	case 3:
		elem, attr, value = parts[0], parts[1], parts[2]
	default:
		return attrPattern{}, fmt.Errorf("removeAttrs: pattern %q has too many parts", raw)
	}
	compile := func(expr string) (*regexp.Regexp, error) {
		if expr == "*" {
			expr = ".*"
		}
		re, err := regexp.Compile("(?i)^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("removeAttrs: pattern %q: %w", raw, err)
		}
		return re, nil
	}
	var (
		out attrPattern
		err error
	)
	if out.elem, err = compile(elem); err != nil {
		return attrPattern{}, err
	}
	if out.attr, err = compile(attr); err != nil {
		return attrPattern{}, err
	}
	if out.value, err = compile(value); err != nil {
		return attrPattern{}, err
	}
	return out, nil
}

func numberAttr(node *Node, name string, fallback float64) (float64, bool) {
	raw, ok := node.Attr(name)
	if !ok {
		return fallback, true
	}
	value, err := strconv.ParseFloat(trimPx(raw), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func isZero(value string) bool {
	parsed, err := strconv.ParseFloat(strings.TrimSuffix(trimPx(value), "%"), 64)
	return err == nil && parsed == 0
}

func num(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func nonBlank(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Kind == TextNode && isBlank(node.Data) {
			continue
		}
		out = append(out, node)
	}
	return out
}
