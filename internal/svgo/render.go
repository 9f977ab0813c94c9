package svgo

import "strings"

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Render serializes the document without added whitespace. Elements without
// children are self-closed.
func Render(doc *Document) string {
	var b strings.Builder
	for _, node := range doc.Nodes {
		renderNode(&b, node)
	}
	return b.String()
}

func renderNode(b *strings.Builder, node *Node) {
	switch node.Kind {
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(node.QName())
		for _, attr := range node.Attrs {
			b.WriteByte(' ')
			b.WriteString(attr.QName())
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(attr.Value))
			b.WriteByte('"')
		}
		if len(node.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, child := range node.Children {
			renderNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(node.QName())
		b.WriteByte('>')
	case TextNode:
		b.WriteString(textEscaper.Replace(node.Data))
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(node.Data)
		b.WriteString("-->")
	case ProcInstNode:
		b.WriteString("<?")
		b.WriteString(node.Name)
		if node.Data != "" {
			b.WriteByte(' ')
			b.WriteString(node.Data)
		}
		b.WriteString("?>")
	case DirectiveNode:
		b.WriteString("<!")
		b.WriteString(node.Data)
		b.WriteByte('>')
	}
}
