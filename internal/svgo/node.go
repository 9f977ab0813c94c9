package svgo

import "strings"

// NodeKind identifies the markup construct a Node represents.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Attr is a single attribute with its raw (unresolved) namespace prefix.
type Attr struct {
	Prefix string
	Name   string
	Value  string
}

// QName returns the qualified attribute name as written in the source.
func (a Attr) QName() string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

// Node is a mutable markup tree node. Element nodes use Prefix, Name, Attrs
// and Children; every other kind keeps its payload in Data (ProcInst nodes
// store the target in Name).
type Node struct {
	Kind     NodeKind
	Prefix   string
	Name     string
	Attrs    []Attr
	Children []*Node
	Data     string
}

// QName returns the qualified element name.
func (n *Node) QName() string {
	if n.Prefix == "" {
		return n.Name
	}
	return n.Prefix + ":" + n.Name
}

// IsElement reports whether n is an element, optionally with one of names.
func (n *Node) IsElement(names ...string) bool {
	if n == nil || n.Kind != ElementNode {
		return false
	}
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if n.Prefix == "" && n.Name == name {
			return true
		}
	}
	return false
}

// Attr returns the value of the unprefixed attribute name.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Prefix == "" && attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr replaces or appends an unprefixed attribute.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Prefix == "" && n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttrs drops every attribute matching fn.
func (n *Node) RemoveAttrs(fn func(Attr) bool) {
	kept := n.Attrs[:0]
	for _, attr := range n.Attrs {
		if !fn(attr) {
			kept = append(kept, attr)
		}
	}
	n.Attrs = kept
}

// ElementChildren returns the element children of n in document order.
func (n *Node) ElementChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Kind == ElementNode {
			out = append(out, child)
		}
	}
	return out
}

// Document is a parsed markup document. Nodes holds the top level prolog,
// comments and the single root element.
type Document struct {
	Nodes []*Node
}

// Root returns the document element.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	for _, node := range d.Nodes {
		if node.Kind == ElementNode {
			return node
		}
	}
	return nil
}

// Walk visits every node depth first in document order. Returning false from
// fn skips the children of the visited node.
func (d *Document) Walk(fn func(node, parent *Node) bool) {
	var visit func(nodes []*Node, parent *Node)
	visit = func(nodes []*Node, parent *Node) {
		for _, node := range nodes {
			if fn(node, parent) && len(node.Children) > 0 {
				visit(node.Children, node)
			}
		}
	}
	visit(d.Nodes, nil)
}

// Filter removes every node for which drop returns true. Children are
// filtered before their parents are evaluated, so containers emptied by the
// pass can be dropped in the same call.
func (d *Document) Filter(drop func(node, parent *Node) bool) {
	var filter func(nodes []*Node, parent *Node) []*Node
	filter = func(nodes []*Node, parent *Node) []*Node {
		kept := nodes[:0]
		for _, node := range nodes {
			if len(node.Children) > 0 {
				node.Children = filter(node.Children, node)
			}
			if !drop(node, parent) {
				kept = append(kept, node)
			}
		}
		return kept
	}
	d.Nodes = filter(d.Nodes, nil)
}

// Replace swaps nodes for the result of fn, which may return nil to keep the
// node unchanged. Replacement runs bottom up.
func (d *Document) Replace(fn func(node, parent *Node) []*Node) {
	var replace func(nodes []*Node, parent *Node) []*Node
	replace = func(nodes []*Node, parent *Node) []*Node {
		out := make([]*Node, 0, len(nodes))
		for _, node := range nodes {
			if len(node.Children) > 0 {
				node.Children = replace(node.Children, node)
			}
			if replacement := fn(node, parent); replacement != nil {
				out = append(out, replacement...)
				continue
			}
			out = append(out, node)
		}
		return out
	}
	d.Nodes = replace(d.Nodes, nil)
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
