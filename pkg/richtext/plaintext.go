package richtext

import "strings"

// PlainText flattens doc into plain text. Text leaves are concatenated in
// document order; a single space separates a node from a following block
// sibling. Containers without any text contribute nothing.
func PlainText(doc *Node) string {
	var b strings.Builder
	writePlain(&b, doc)
	return b.String()
}

func writePlain(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	for i, child := range n.Content {
		if child == nil {
			continue
		}
		switch {
		case child.IsText():
			b.WriteString(child.Value)
		case child.IsBlock() || child.IsInline():
			var inner strings.Builder
			writePlain(&inner, child)
			if inner.Len() == 0 {
				continue
			}
			b.WriteString(inner.String())
		default:
			continue
		}
		if i+1 < len(n.Content) && n.Content[i+1].IsBlock() {
			b.WriteByte(' ')
		}
	}
}
