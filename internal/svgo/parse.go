package svgo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	// ErrMalformed is returned when the document is not well-formed markup.
	ErrMalformed = errors.New("svgo: malformed document")
	// ErrNotSVG is returned when the document element is not <svg>.
	ErrNotSVG = errors.New("svgo: document root is not an svg element")
)

// Parse builds a Document from src. Unlike an HTML parser it rejects
// mismatched or unterminated tags, multiple roots and stray top level text.
func Parse(src string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	var stack []*Node
	appendNode := func(node *Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, node)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
	}

	rootSeen := false
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				if rootSeen {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformed)
				}
				rootSeen = true
			}
			node := &Node{
				Kind:   ElementNode,
				Prefix: t.Name.Space,
				Name:   t.Name.Local,
				Attrs:  make([]Attr, 0, len(t.Attr)),
			}
			for _, attr := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{
					Prefix: attr.Name.Space,
					Name:   attr.Name.Local,
					Value:  attr.Value,
				})
			}
			appendNode(node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected closing tag </%s>", ErrMalformed, qualified(t.Name))
			}
			open := stack[len(stack)-1]
			if open.Prefix != t.Name.Space || open.Name != t.Name.Local {
				return nil, fmt.Errorf("%w: closing tag </%s> does not match <%s>", ErrMalformed, qualified(t.Name), open.QName())
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if !isBlank(string(t)) {
					return nil, fmt.Errorf("%w: text outside the root element", ErrMalformed)
				}
				continue
			}
			if isBlank(string(t)) && !preservesWhitespace(stack[len(stack)-1]) {
				continue
			}
			appendNode(&Node{Kind: TextNode, Data: string(t)})
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			appendNode(&Node{Kind: ProcInstNode, Name: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			appendNode(&Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrMalformed, stack[len(stack)-1].QName())
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("%w: found <%s>", ErrNotSVG, root.QName())
	}
	return doc, nil
}

func preservesWhitespace(node *Node) bool {
	return node.IsElement("text", "tspan", "textPath", "title", "desc", "style")
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
