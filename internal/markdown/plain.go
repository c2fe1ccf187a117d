package markdown

import (
	"strings"
)

// PlainText returns the document's text with all markup removed: the
// concatenation of every leaf's text in document order.
func PlainText(doc Document) string {
	var b strings.Builder
	for _, el := range doc.Elements {
		writePlain(&b, el)
	}
	return b.String()
}

// ElementPlainText returns the plain text of a single element.
func ElementPlainText(el Element) string {
	var b strings.Builder
	writePlain(&b, el)
	return b.String()
}

// writePlain appends el's leaves to b. A container's own text is ignored in
// favor of its children, which cover the same span without markers.
func writePlain(b *strings.Builder, el Element) {
	children := el.Children()
	if len(children) == 0 {
		b.WriteString(el.Text())
		return
	}
	for _, child := range children {
		writePlain(b, child)
	}
}
