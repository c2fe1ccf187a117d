package markdown

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the document back as markdown using one canonical marker per
// construct: "-" for unordered items, '*' for emphasis and "---" for rules.
// Re-parsing the output of Render yields the same plain text for documents whose
// literal text contains no marker characters.
func Render(doc Document) string {
	var b strings.Builder
	for _, el := range doc.Elements {
		renderElement(&b, el)
	}
	return b.String()
}

func renderChildren(b *strings.Builder, elements []Element) {
	for _, el := range elements {
		renderElement(b, el)
	}
}

func renderElement(b *strings.Builder, el Element) {
	switch e := el.(type) {
	case Text:
		b.WriteString(e.Value)
	case UnorderedListItem:
		b.WriteString("- ")
		renderChildren(b, e.Elements)
	case Header:
		b.WriteString(strings.Repeat("#", e.Level))
		b.WriteString(" ")
		b.WriteString(e.Value)
	case Quote:
		b.WriteString("> ")
		renderChildren(b, e.Elements)
	case Italic:
		b.WriteString("*")
		renderChildren(b, e.Elements)
		b.WriteString("*")
	case Bold:
		b.WriteString("**")
		renderChildren(b, e.Elements)
		b.WriteString("**")
	case Strike:
		b.WriteString("~~")
		renderChildren(b, e.Elements)
		b.WriteString("~~")
	case Rule:
		b.WriteString("---")
	case InlineCode:
		b.WriteString("`")
		b.WriteString(e.Value)
		b.WriteString("`")
	case Link:
		fmt.Fprintf(b, "[%s](%s)", e.Display, e.Target)
	case OrderedListItem:
		b.WriteString(e.Marker)
		b.WriteString(" ")
		renderChildren(b, e.Elements)
	case BlockCode:
		switch e.Type {
		case BlockCodeStart:
			b.WriteString("```\n")
			b.WriteString(e.Value)
		case BlockCodeMiddle:
			b.WriteString(e.Value)
		case BlockCodeEnd:
			b.WriteString(e.Value)
			b.WriteString("\n```")
		case BlockCodeSingle:
			b.WriteString("```\n")
			b.WriteString(e.Value)
			b.WriteString("\n```")
		}
	}
}

// Dump writes an indented listing of the tree, one element per line.
func Dump(w io.Writer, doc Document) error {
	var err error
	Walk(doc.Elements, func(el Element, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(el))
		return true
	})
	return err
}

// describe formats an element's kind, attributes and text for Dump.
func describe(el Element) string {
	switch e := el.(type) {
	case Header:
		return fmt.Sprintf("%s level=%d %q", e.Kind(), e.Level, e.Value)
	case Link:
		return fmt.Sprintf("%s target=%q %q", e.Kind(), e.Target, e.Display)
	case OrderedListItem:
		return fmt.Sprintf("%s marker=%q %q", e.Kind(), e.Marker, e.Value)
	case BlockCode:
		return fmt.Sprintf("%s type=%s %q", e.Kind(), e.Type, e.Value)
	case Rule:
		return e.Kind().String()
	default:
		return fmt.Sprintf("%s %q", el.Kind(), el.Text())
	}
}
